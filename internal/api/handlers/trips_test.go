package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/partner"
	"github.com/cargolink/nfe-trip-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIntegration struct {
	submitResult *models.TripSubmissionResponse
	submitErr    error
	gotCreds     partner.Credentials
	orderResults []models.OrderResult
	historyPage  *models.HistoryResponse
	historyErr   error
}

func (f *fakeIntegration) SubmitTrip(ctx context.Context, trip *models.Trip, creds partner.Credentials) (*models.TripSubmissionResponse, error) {
	f.gotCreds = creds
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitResult, nil
}

func (f *fakeIntegration) SubmitOrders(ctx context.Context, orders []models.Order, creds partner.Credentials) []models.OrderResult {
	f.gotCreds = creds
	return f.orderResults
}

func (f *fakeIntegration) History(ctx context.Context, page, pageSize int) (*models.HistoryResponse, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.historyPage, nil
}

func newTripsRouter(integration *fakeIntegration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewTripsHandler(integration, logger)
	router := gin.New()
	router.POST("/api/v1/trips", handler.Submit)
	router.GET("/api/v1/trips/integration-history", handler.History)
	return router
}

func postTrip(t *testing.T, router *gin.Engine, trip *models.Trip) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(trip)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer tok-123")
	req.Header.Set("X-Organization-Id", "org-1")
	req.Header.Set("X-Workspace-Id", "ws-1")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestTripsSubmit_Success(t *testing.T) {
	integration := &fakeIntegration{
		submitResult: &models.TripSubmissionResponse{
			ExternalID: "VIAGEM-001",
			Status:     models.IntegrationStatusSuccess,
		},
	}
	router := newTripsRouter(integration)

	recorder := postTrip(t, router, &models.Trip{ExternalID: "VIAGEM-001"})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response models.TripSubmissionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "VIAGEM-001", response.ExternalID)
}

func TestTripsSubmit_CredentialsFromHeaders(t *testing.T) {
	integration := &fakeIntegration{submitResult: &models.TripSubmissionResponse{}}
	router := newTripsRouter(integration)

	postTrip(t, router, &models.Trip{})

	assert.Equal(t, "tok-123", integration.gotCreds.Token)
	assert.Equal(t, "org-1", integration.gotCreds.OrganizationID)
	assert.Equal(t, "ws-1", integration.gotCreds.WorkspaceID)
}

func TestTripsSubmit_TransformErrorIsBadRequest(t *testing.T) {
	integration := &fakeIntegration{submitErr: &partner.TransformError{Reason: "trip has no stops"}}
	router := newTripsRouter(integration)

	recorder := postTrip(t, router, &models.Trip{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "TRANSFORM_ERROR", response.Code)
}

func TestTripsSubmit_PartnerErrorIsBadGateway(t *testing.T) {
	integration := &fakeIntegration{submitErr: &partner.Error{StatusCode: 422, Body: "rejected"}}
	router := newTripsRouter(integration)

	recorder := postTrip(t, router, &models.Trip{})
	assert.Equal(t, http.StatusBadGateway, recorder.Code)

	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "PARTNER_ERROR", response.Code)
}

func TestTripsSubmit_PersistenceErrorIsInternal(t *testing.T) {
	integration := &fakeIntegration{
		submitErr: &services.PersistenceError{Op: "insert", Err: errors.New("disk full")},
	}
	router := newTripsRouter(integration)

	recorder := postTrip(t, router, &models.Trip{})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "PERSISTENCE_ERROR", response.Code)
}

func TestTripsSubmit_InvalidJSON(t *testing.T) {
	router := newTripsRouter(&fakeIntegration{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/trips", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTripsHistory(t *testing.T) {
	integration := &fakeIntegration{
		historyPage: &models.HistoryResponse{
			Items:    []models.IntegrationRecord{{ExternalID: "a"}},
			Total:    1,
			Page:     2,
			PageSize: 5,
		},
	}
	router := newTripsRouter(integration)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/trips/integration-history?page=2&page_size=5", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response models.HistoryResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.Total)
	assert.Equal(t, 2, response.Page)
}
