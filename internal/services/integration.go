package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/partner"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// IntegrationService owns the idempotent submit-and-record workflow:
// derive the external id, consult the history, call the partner and
// persist the outcome. It never retries against the partner; retry is
// caller-driven and lands on the idempotency check.
type IntegrationService struct {
	store       HistoryStoreInterface
	cache       CacheServiceInterface
	client      PartnerClientInterface
	transformer *partner.Transformer
	logger      *logrus.Logger
}

// NewIntegrationService creates a new integration service
func NewIntegrationService(
	store HistoryStoreInterface,
	cache CacheServiceInterface,
	client PartnerClientInterface,
	transformer *partner.Transformer,
	logger *logrus.Logger,
) IntegrationServiceInterface {
	return &IntegrationService{
		store:       store,
		cache:       cache,
		client:      client,
		transformer: transformer,
		logger:      logger,
	}
}

func cacheKey(externalID string) string {
	return "integration:" + externalID
}

// SubmitTrip runs the submission workflow for one trip. A prior
// successful record for the same external id is replayed without a
// partner call; a prior failed record is deleted and the attempt
// repeated. There is no transactional guard spanning the check and the
// insert; the unique index on external_id backstops concurrent
// submissions for the same id.
func (s *IntegrationService) SubmitTrip(ctx context.Context, trip *models.Trip, creds partner.Credentials) (*models.TripSubmissionResponse, error) {
	externalID := strings.TrimSpace(trip.ExternalID)
	if externalID == "" {
		externalID = uuid.New().String()
	}
	trip.ExternalID = externalID

	log := s.logger.WithField("external_id", externalID)

	// Only successful responses are cached, and successes are immutable,
	// so a cache hit is always a safe replay.
	if cached, err := s.cache.Get(ctx, cacheKey(externalID)); err == nil && cached != "" {
		log.Info("Trip already integrated, replaying cached response")
		return s.replay(externalID, json.RawMessage(cached)), nil
	}

	existing, err := s.store.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, &PersistenceError{Op: "lookup", Err: err}
	}
	if existing != nil {
		if existing.Status == models.IntegrationStatusSuccess {
			log.Info("Trip already integrated, replaying stored response")
			return s.replay(externalID, existing.PartnerResponse), nil
		}

		// A failed attempt carries no right to block retry
		log.Info("Removing stale failed integration record before retry")
		if err := s.store.Delete(ctx, existing); err != nil {
			return nil, &PersistenceError{Op: "delete", Err: err}
		}
	}

	payload, err := s.transformer.TransformTrip(trip)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(trip)
	if err != nil {
		return nil, &partner.TransformError{Reason: "trip not serializable: " + err.Error()}
	}

	response, submitErr := s.client.SubmitTrip(ctx, payload, creds)
	if submitErr != nil {
		log.WithField("error", submitErr.Error()).Error("Partner rejected trip")

		record := &models.IntegrationRecord{
			ExternalID:   externalID,
			TripData:     snapshot,
			Status:       models.IntegrationStatusError,
			ErrorMessage: submitErr.Error(),
		}
		// Persistence is best-effort here; the partner error always
		// reaches the caller.
		if err := s.store.Insert(ctx, record); err != nil {
			log.WithField("error", err.Error()).Error("Failed to record integration failure")
		}
		return nil, submitErr
	}

	record := &models.IntegrationRecord{
		ExternalID:      externalID,
		TripData:        snapshot,
		PartnerResponse: response,
		Status:          models.IntegrationStatusSuccess,
	}
	if err := s.store.Insert(ctx, record); err != nil {
		// Without the record a retry would submit the trip again, so a
		// partner success with no stored outcome is a server error.
		return nil, &PersistenceError{Op: "insert", Err: err}
	}

	if err := s.cache.Set(ctx, cacheKey(externalID), string(response)); err != nil {
		log.WithField("error", err.Error()).Warn("Failed to cache integration response")
	}

	log.Info("Trip integrated successfully")
	return &models.TripSubmissionResponse{
		ExternalID:      externalID,
		Status:          models.IntegrationStatusSuccess,
		Replayed:        false,
		PartnerResponse: response,
		Timestamp:       record.CreatedAt,
	}, nil
}

// SubmitOrders submits each order in turn. Strictly sequential by
// contract: the per-item result list preserves input order and a
// failed item never cancels the remaining ones.
func (s *IntegrationService) SubmitOrders(ctx context.Context, orders []models.Order, creds partner.Credentials) []models.OrderResult {
	results := make([]models.OrderResult, 0, len(orders))

	for _, order := range orders {
		payload, err := s.transformer.TransformOrder(&order)
		if err != nil {
			results = append(results, models.OrderResult{OrderID: order.ID, Error: err.Error()})
			continue
		}

		response, err := s.client.SubmitOrder(ctx, payload, creds)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Order integration failed")
			results = append(results, models.OrderResult{OrderID: order.ID, Error: err.Error()})
			continue
		}

		results = append(results, models.OrderResult{
			OrderID:         order.ID,
			Success:         true,
			PartnerResponse: response,
		})
	}

	return results
}

// History returns one page of integration records
func (s *IntegrationService) History(ctx context.Context, page, pageSize int) (*models.HistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	records, total, err := s.store.ListPage(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	return &models.HistoryResponse{
		Items:    records,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *IntegrationService) replay(externalID string, response json.RawMessage) *models.TripSubmissionResponse {
	return &models.TripSubmissionResponse{
		ExternalID:      externalID,
		Status:          models.IntegrationStatusSuccess,
		Replayed:        true,
		PartnerResponse: response,
	}
}
