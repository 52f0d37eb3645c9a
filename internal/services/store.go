package services

import (
	"context"
	"errors"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HistoryStore persists integration attempts. The unique index on
// external_id makes a duplicate insert fail at the database instead of
// racing silently.
type HistoryStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewHistoryStore creates a new history store
func NewHistoryStore(db *gorm.DB, logger *logrus.Logger) HistoryStoreInterface {
	return &HistoryStore{db: db, logger: logger}
}

// FindByExternalID returns the record for an external id, or (nil, nil)
// when none exists
func (s *HistoryStore) FindByExternalID(ctx context.Context, externalID string) (*models.IntegrationRecord, error) {
	var record models.IntegrationRecord
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Insert appends a new integration record
func (s *HistoryStore) Insert(ctx context.Context, record *models.IntegrationRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Delete removes a record
func (s *HistoryStore) Delete(ctx context.Context, record *models.IntegrationRecord) error {
	return s.db.WithContext(ctx).Delete(record).Error
}

// ListPage returns one page of records, newest first, and the total count
func (s *HistoryStore) ListPage(ctx context.Context, offset, limit int) ([]models.IntegrationRecord, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.IntegrationRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.IntegrationRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
