package nfe

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor() *BatchProcessor {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewBatchProcessor(logger)
}

func TestBatchProcess_EmptyBatch(t *testing.T) {
	_, err := newTestProcessor().Process(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestBatchProcess_PartialSuccess(t *testing.T) {
	docs := []NamedDocument{
		{Filename: "nota1.xml", Data: buildXML(validBody)},
		{Filename: "quebrada.xml", Data: []byte(`<nfeProc><NFe>`)},
		{Filename: "nota3.xml", Data: buildXML(validBody)},
	}

	result, err := newTestProcessor().Process(docs)
	require.NoError(t, err)

	assert.Len(t, result.Processed, 2)
	assert.Len(t, result.Errors, 1)
	assert.NotEmpty(t, result.Errors["quebrada.xml"])
	assert.NotContains(t, result.Errors, "nota1.xml")
	assert.NotContains(t, result.Errors, "nota3.xml")
}

func TestBatchProcess_ValidationErrorsRendered(t *testing.T) {
	docs := []NamedDocument{
		{Filename: "incompleta.xml", Data: buildXML(`<ide><nNF>1</nNF></ide>`)},
	}

	result, err := newTestProcessor().Process(docs)
	require.NoError(t, err)

	assert.Empty(t, result.Processed)
	require.NotEmpty(t, result.Errors["incompleta.xml"])
	for _, msg := range result.Errors["incompleta.xml"] {
		assert.Contains(t, msg, "missing required field:")
	}
}

func TestBatchProcess_AllValid(t *testing.T) {
	docs := []NamedDocument{
		{Filename: "a.xml", Data: buildXML(validBody)},
		{Filename: "b.xml", Data: buildXML(validBody)},
	}

	result, err := newTestProcessor().Process(docs)
	require.NoError(t, err)

	assert.Len(t, result.Processed, 2)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "123", result.Processed[0].Number)
}
