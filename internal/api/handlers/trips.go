package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/partner"
	"github.com/cargolink/nfe-trip-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TripsHandler handles trip submission and integration history
type TripsHandler struct {
	integration services.IntegrationServiceInterface
	logger      *logrus.Logger
}

// NewTripsHandler creates a new trips handler
func NewTripsHandler(integration services.IntegrationServiceInterface, logger *logrus.Logger) *TripsHandler {
	return &TripsHandler{
		integration: integration,
		logger:      logger,
	}
}

// credentialsFromRequest builds per-call partner credentials from the
// request headers. They are never stored.
func credentialsFromRequest(c *gin.Context) partner.Credentials {
	token := c.GetHeader("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	return partner.Credentials{
		Token:          token,
		OrganizationID: c.GetHeader("X-Organization-Id"),
		WorkspaceID:    c.GetHeader("X-Workspace-Id"),
	}
}

// Submit handles trip integration
// @Summary Submit a trip to the logistics partner
// @Description Idempotently submit a multi-stop trip, keyed by its external id
// @Tags Trips
// @Accept json
// @Produce json
// @Param trip body models.Trip true "Trip to submit"
// @Success 200 {object} models.TripSubmissionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /trips [post]
func (h *TripsHandler) Submit(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	var tripPayload models.Trip
	if err := c.ShouldBindJSON(&tripPayload); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"external_id": tripPayload.ExternalID,
		"stops":       len(tripPayload.Stops),
	}).Info("Processing trip submission")

	result, err := h.integration.SubmitTrip(c.Request.Context(), &tripPayload, credentialsFromRequest(c))
	if err != nil {
		h.handleSubmitError(c, requestID, err, time.Since(start))
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"external_id": result.ExternalID,
		"replayed":    result.Replayed,
		"duration":    time.Since(start),
	}).Info("Trip submission completed")

	c.JSON(http.StatusOK, result)
}

// History handles integration history listing
// @Summary List integration history
// @Description Paginated list of trip integration attempts, newest first
// @Tags Trips
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} models.HistoryResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /trips/integration-history [get]
func (h *TripsHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.integration.History(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"error":      err.Error(),
		}).Error("Failed to list integration history")

		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Internal server error",
			Message:   "Failed to list integration history",
			Code:      "HISTORY_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleSubmitError maps workflow errors to the most specific status
// code and taxonomy code.
func (h *TripsHandler) handleSubmitError(c *gin.Context, requestID string, err error, duration time.Duration) {
	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"duration":   duration,
	}).Error("Trip submission failed")

	var transformErr *partner.TransformError
	var partnerErr *partner.Error
	var persistenceErr *services.PersistenceError

	switch {
	case errors.As(err, &transformErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid trip",
			Message:   transformErr.Error(),
			Code:      "TRANSFORM_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.As(err, &partnerErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:     "Partner integration failed",
			Message:   partnerErr.Error(),
			Code:      "PARTNER_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	case errors.As(err, &persistenceErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Persistence failure",
			Message:   persistenceErr.Error(),
			Code:      "PERSISTENCE_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Internal server error",
			Message:   "An unexpected error occurred while processing your request",
			Code:      "INTERNAL_ERROR",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}
