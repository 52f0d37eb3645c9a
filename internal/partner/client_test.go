package partner

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cargolink/nfe-trip-api/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewClient(config.PartnerConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, logger)
}

func TestClient_SubmitTrip(t *testing.T) {
	var gotPath, gotAuth, gotOrg, gotWorkspace string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotOrg = r.Header.Get("X-Organization-Id")
		gotWorkspace = r.Header.Get("X-Workspace-Id")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"trip-1"}`))
	}))
	defer server.Close()

	creds := Credentials{Token: "tok", OrganizationID: "org-1", WorkspaceID: "ws-1"}
	resp, err := newTestClient(server.URL).SubmitTrip(context.Background(), &TripPayload{ExternalID: "x"}, creds)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"trip-1"}`, string(resp))
	assert.Equal(t, "/trips", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "org-1", gotOrg)
	assert.Equal(t, "ws-1", gotWorkspace)
}

func TestClient_SubmitOrderPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SubmitOrder(context.Background(), &OrderPayload{ExternalID: "PED-1"}, Credentials{})
	require.NoError(t, err)
	assert.Equal(t, "/orders", gotPath)
}

func TestClient_PartnerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"invalid cnpj"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SubmitTrip(context.Background(), &TripPayload{}, Credentials{})
	require.Error(t, err)

	var partnerErr *Error
	require.ErrorAs(t, err, &partnerErr)
	assert.Equal(t, http.StatusUnprocessableEntity, partnerErr.StatusCode)
	assert.Contains(t, partnerErr.Body, "invalid cnpj")
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL).SubmitTrip(context.Background(), &TripPayload{}, Credentials{})
	require.Error(t, err)

	var partnerErr *Error
	require.ErrorAs(t, err, &partnerErr)
	assert.Zero(t, partnerErr.StatusCode)
	assert.Error(t, partnerErr.Err)
}
