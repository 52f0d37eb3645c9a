package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cargolink/nfe-trip-api/internal/config"
	"github.com/sirupsen/logrus"
)

// Credentials authenticate one partner call. They are supplied by the
// caller per request and never stored in the client.
type Credentials struct {
	Token          string
	OrganizationID string
	WorkspaceID    string
}

// Client performs the authenticated network calls to the logistics
// partner. The HTTP timeout bounds every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new partner client
func NewClient(cfg config.PartnerConfig, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// SubmitTrip sends a trip payload to the partner
func (c *Client) SubmitTrip(ctx context.Context, payload *TripPayload, creds Credentials) (json.RawMessage, error) {
	return c.post(ctx, "/trips", payload, creds)
}

// SubmitOrder sends an order payload to the partner
func (c *Client) SubmitOrder(ctx context.Context, payload *OrderPayload, creds Credentials) (json.RawMessage, error) {
	return c.post(ctx, "/orders", payload, creds)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, creds Credentials) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransformError{Reason: fmt.Sprintf("payload not serializable: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)
	if creds.OrganizationID != "" {
		req.Header.Set("X-Organization-Id", creds.OrganizationID)
	}
	if creds.WorkspaceID != "" {
		req.Header.Set("X-Workspace-Id", creds.WorkspaceID)
	}

	c.logger.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(body),
	}).Debug("Submitting payload to partner")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("Partner rejected payload")
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return json.RawMessage(respBody), nil
}
