package models

import (
	"encoding/json"
	"time"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error" example:"Invalid trip"`
	Message   string    `json:"message" example:"a trip must contain at least one stop"`
	Code      string    `json:"code,omitempty" example:"INVALID_TRIP"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Path      string    `json:"path" example:"/api/v1/trips"`
}

// UploadResponse is the result of a batch NFe upload: the invoices that
// were extracted, the per-file errors, and the assembled trip preview.
type UploadResponse struct {
	Processed []Invoice           `json:"processed"`
	Errors    map[string][]string `json:"errors,omitempty"`
	Trip      *Trip               `json:"trip,omitempty"`
	Total     int                 `json:"total" example:"3"`
	Failed    int                 `json:"failed" example:"1"`
	Timestamp time.Time           `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// TripSubmissionResponse is the outcome of a trip integration
type TripSubmissionResponse struct {
	ExternalID      string          `json:"external_id" example:"VIAGEM-2024-001"`
	Status          string          `json:"status" example:"success"`
	Replayed        bool            `json:"replayed" example:"false"`
	PartnerResponse json.RawMessage `json:"partner_response,omitempty"`
	Timestamp       time.Time       `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// HistoryResponse is a page of integration records
type HistoryResponse struct {
	Items    []IntegrationRecord `json:"items"`
	Total    int64               `json:"total" example:"42"`
	Page     int                 `json:"page" example:"1"`
	PageSize int                 `json:"page_size" example:"10"`
}

// OrdersUploadResponse is the result of a CSV order import
type OrdersUploadResponse struct {
	Orders    []Order   `json:"orders"`
	Errors    []string  `json:"errors,omitempty"`
	Total     int       `json:"total" example:"10"`
	Failed    int       `json:"failed" example:"0"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// OrderResult is the per-item outcome of a batch order integration
type OrderResult struct {
	OrderID         string          `json:"order_id" example:"PED-001"`
	Success         bool            `json:"success" example:"true"`
	Error           string          `json:"error,omitempty"`
	PartnerResponse json.RawMessage `json:"partner_response,omitempty"`
}

// BatchOrdersResponse summarizes a batch order integration
type BatchOrdersResponse struct {
	Results    []OrderResult `json:"results"`
	Total      int           `json:"total" example:"10"`
	Success    int           `json:"success" example:"9"`
	Errors     int           `json:"errors" example:"1"`
	DurationMs int64         `json:"duration_ms" example:"3500"`
	Timestamp  time.Time     `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp time.Time              `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Version   string                 `json:"version" example:"1.0.0"`
	Services  map[string]interface{} `json:"services"`
	Uptime    string                 `json:"uptime" example:"2h30m45s"`
}
