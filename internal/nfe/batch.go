package nfe

import (
	"errors"
	"fmt"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrEmptyBatch is returned when a batch contains no documents
var ErrEmptyBatch = errors.New("no documents provided")

// NamedDocument is one uploaded file in a batch
type NamedDocument struct {
	Filename string
	Data     []byte
}

// BatchResult collects the invoices that were extracted and the errors
// of the documents that were not, keyed by filename.
type BatchResult struct {
	Processed []models.Invoice
	Errors    map[string][]string
}

// BatchProcessor drives decode, parse, validate and extract over a set
// of uploaded documents. One document's failure never aborts the rest.
type BatchProcessor struct {
	logger *logrus.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(logger *logrus.Logger) *BatchProcessor {
	return &BatchProcessor{logger: logger}
}

// Process handles each document independently, in input order.
// Successful extractions land in Processed; every failure is rendered
// as human-readable strings under the document's filename.
func (p *BatchProcessor) Process(docs []NamedDocument) (*BatchResult, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyBatch
	}

	result := &BatchResult{
		Processed: make([]models.Invoice, 0, len(docs)),
		Errors:    make(map[string][]string),
	}

	for _, named := range docs {
		doc, err := Parse(named.Data)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"filename": named.Filename,
				"error":    err.Error(),
			}).Warn("Failed to parse document")
			result.Errors[named.Filename] = append(result.Errors[named.Filename], err.Error())
			continue
		}

		if validation := Validate(doc); !validation.Valid {
			p.logger.WithFields(logrus.Fields{
				"filename":       named.Filename,
				"missing_fields": len(validation.MissingFields),
			}).Warn("Document failed validation")
			for _, field := range validation.MissingFields {
				result.Errors[named.Filename] = append(result.Errors[named.Filename],
					fmt.Sprintf("missing required field: %s", field))
			}
			continue
		}

		invoice, err := Extract(doc)
		if err != nil {
			p.logger.WithFields(logrus.Fields{
				"filename": named.Filename,
				"error":    err.Error(),
			}).Warn("Failed to extract invoice")
			result.Errors[named.Filename] = append(result.Errors[named.Filename], err.Error())
			continue
		}

		result.Processed = append(result.Processed, *invoice)
	}

	return result, nil
}
