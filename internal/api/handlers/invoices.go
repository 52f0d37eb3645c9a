package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/nfe"
	"github.com/cargolink/nfe-trip-api/internal/trip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InvoicesHandler handles NFe upload requests
type InvoicesHandler struct {
	processor *nfe.BatchProcessor
	logger    *logrus.Logger
}

// NewInvoicesHandler creates a new invoices handler
func NewInvoicesHandler(processor *nfe.BatchProcessor, logger *logrus.Logger) *InvoicesHandler {
	return &InvoicesHandler{
		processor: processor,
		logger:    logger,
	}
}

// Upload handles batch NFe XML upload
// @Summary Upload NFe XML files
// @Description Parse, validate and extract a batch of NFe XML documents and preview the assembled trip
// @Tags Invoices
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "NFe XML files"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /invoices/upload [post]
func (h *InvoicesHandler) Upload(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid upload",
			Message:   err.Error(),
			Code:      "INVALID_UPLOAD",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	files := form.File["files"]
	docs := make([]nfe.NamedDocument, 0, len(files))
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "Unreadable file",
				Message:   err.Error(),
				Code:      "INVALID_UPLOAD",
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "Unreadable file",
				Message:   err.Error(),
				Code:      "INVALID_UPLOAD",
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}
		docs = append(docs, nfe.NamedDocument{Filename: file.Filename, Data: data})
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"files":      len(docs),
	}).Info("Processing NFe upload")

	result, err := h.processor.Process(docs)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Empty batch",
			Message:   err.Error(),
			Code:      "EMPTY_BATCH",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	response := models.UploadResponse{
		Processed: result.Processed,
		Errors:    result.Errors,
		Total:     len(docs),
		Failed:    len(result.Errors),
		Timestamp: time.Now(),
	}
	if len(result.Processed) > 0 {
		response.Trip = trip.Assemble(result.Processed)
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"processed":  len(result.Processed),
		"failed":     len(result.Errors),
		"duration":   time.Since(start),
	}).Info("NFe upload completed")

	c.JSON(http.StatusOK, response)
}
