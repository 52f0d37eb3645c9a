package services

import (
	"context"
	"encoding/json"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/partner"
)

// IntegrationServiceInterface defines the interface for the trip and
// order integration orchestrator
type IntegrationServiceInterface interface {
	// SubmitTrip runs the idempotent submit-and-record workflow for one trip
	SubmitTrip(ctx context.Context, trip *models.Trip, creds partner.Credentials) (*models.TripSubmissionResponse, error)

	// SubmitOrders submits orders strictly sequentially, accumulating
	// per-item results; one failure never cancels the rest
	SubmitOrders(ctx context.Context, orders []models.Order, creds partner.Credentials) []models.OrderResult

	// History returns one page of integration records
	History(ctx context.Context, page, pageSize int) (*models.HistoryResponse, error)
}

// HistoryStoreInterface defines the interface for integration attempt
// persistence. FindByExternalID returns (nil, nil) when no record exists.
type HistoryStoreInterface interface {
	FindByExternalID(ctx context.Context, externalID string) (*models.IntegrationRecord, error)
	Insert(ctx context.Context, record *models.IntegrationRecord) error
	Delete(ctx context.Context, record *models.IntegrationRecord) error
	ListPage(ctx context.Context, offset, limit int) ([]models.IntegrationRecord, int64, error)
}

// CacheServiceInterface defines the interface for the idempotency
// response cache
type CacheServiceInterface interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value string) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Health returns cache service health status
	Health() map[string]interface{}
}

// PartnerClientInterface defines the interface for the partner API client
type PartnerClientInterface interface {
	SubmitTrip(ctx context.Context, payload *partner.TripPayload, creds partner.Credentials) (json.RawMessage, error)
	SubmitOrder(ctx context.Context, payload *partner.OrderPayload, creds partner.Credentials) (json.RawMessage, error)
}
