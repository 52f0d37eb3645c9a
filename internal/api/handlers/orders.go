package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/orders"
	"github.com/cargolink/nfe-trip-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OrdersHandler handles order CSV imports and batch integration
type OrdersHandler struct {
	integration services.IntegrationServiceInterface
	logger      *logrus.Logger
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(integration services.IntegrationServiceInterface, logger *logrus.Logger) *OrdersHandler {
	return &OrdersHandler{
		integration: integration,
		logger:      logger,
	}
}

// Upload handles order CSV import
// @Summary Import transport orders from a CSV file
// @Description Parse a headered CSV file into orders; invalid rows are reported individually
// @Tags Orders
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} models.OrdersUploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/upload [post]
func (h *OrdersHandler) Upload(c *gin.Context) {
	requestID := c.GetString("request_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid upload",
			Message:   "expected a multipart form with a 'file' field",
			Code:      "INVALID_UPLOAD",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid upload",
			Message:   "cannot open uploaded file: " + err.Error(),
			Code:      "INVALID_UPLOAD",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid upload",
			Message:   "cannot read uploaded file: " + err.Error(),
			Code:      "INVALID_UPLOAD",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	result, err := orders.Parse(data)
	if err != nil {
		code := "INVALID_CSV"
		if errors.Is(err, orders.ErrEmptyFile) {
			code = "EMPTY_CSV"
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid CSV file",
			Message:   err.Error(),
			Code:      code,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"filename":   fileHeader.Filename,
		"orders":     len(result.Orders),
		"failed":     len(result.Errors),
	}).Info("Order CSV import completed")

	c.JSON(http.StatusOK, models.OrdersUploadResponse{
		Orders:    result.Orders,
		Errors:    result.Errors,
		Total:     len(result.Orders) + len(result.Errors),
		Failed:    len(result.Errors),
		Timestamp: time.Now(),
	})
}

// Integrate handles batch order integration
// @Summary Submit a batch of orders to the logistics partner
// @Description Submit orders sequentially; one failure never cancels the rest
// @Tags Orders
// @Accept json
// @Produce json
// @Param orders body []models.Order true "Orders to submit"
// @Success 200 {object} models.BatchOrdersResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /orders/integrate [post]
func (h *OrdersHandler) Integrate(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	var batch []models.Order
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Empty batch",
			Message:   "at least one order is required",
			Code:      "EMPTY_BATCH",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"orders":     len(batch),
	}).Info("Processing batch order integration")

	results := h.integration.SubmitOrders(c.Request.Context(), batch, credentialsFromRequest(c))

	success := 0
	for _, r := range results {
		if r.Success {
			success++
		}
	}
	duration := time.Since(start)

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"total":      len(results),
		"success":    success,
		"errors":     len(results) - success,
		"duration":   duration,
	}).Info("Batch order integration completed")

	c.JSON(http.StatusOK, models.BatchOrdersResponse{
		Results:    results,
		Total:      len(results),
		Success:    success,
		Errors:     len(results) - success,
		DurationMs: duration.Milliseconds(),
		Timestamp:  time.Now(),
	})
}
