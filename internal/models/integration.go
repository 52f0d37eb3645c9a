package models

import (
	"encoding/json"
	"time"
)

// Integration record statuses
const (
	IntegrationStatusSuccess = "success"
	IntegrationStatusError   = "error"
)

// IntegrationRecord is the persisted outcome of one trip submission
// attempt. ExternalID carries a unique index so a duplicate insert for
// the same id fails at the database instead of racing silently.
type IntegrationRecord struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ExternalID      string          `gorm:"uniqueIndex;not null" json:"external_id"`
	TripData        json.RawMessage `gorm:"type:text" json:"trip_data"`
	PartnerResponse json.RawMessage `gorm:"type:text" json:"partner_response,omitempty"`
	Status          string          `gorm:"not null" json:"status" example:"success"`
	ErrorMessage    string          `json:"error_message,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName implements the GORM tabler interface
func (IntegrationRecord) TableName() string { return "integrated_trips" }
