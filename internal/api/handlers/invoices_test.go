package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/nfe"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35240111222333000181550010000001231000001234" versao="4.00">
      <ide><nNF>123</nNF></ide>
      <emit>
        <CNPJ>11222333000181</CNPJ>
        <xNome>EMITENTE LTDA</xNome>
        <enderEmit>
          <xLgr>Rua das Flores</xLgr>
          <nro>100</nro>
          <xBairro>Centro</xBairro>
          <xMun>Sao Paulo</xMun>
          <UF>SP</UF>
          <CEP>01000000</CEP>
        </enderEmit>
      </emit>
      <dest>
        <CNPJ>11444777000161</CNPJ>
        <xNome>DESTINATARIO SA</xNome>
        <enderDest>
          <xLgr>Av Brasil</xLgr>
          <nro>2000</nro>
          <xBairro>Batel</xBairro>
          <xMun>Curitiba</xMun>
          <UF>PR</UF>
          <CEP>80000000</CEP>
        </enderDest>
      </dest>
      <transp><vol><qVol>2</qVol><pesoB>12.5</pesoB></vol></transp>
    </infNFe>
  </NFe>
</nfeProc>`

func newInvoicesRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewInvoicesHandler(nfe.NewBatchProcessor(logger), logger)
	router := gin.New()
	router.POST("/api/v1/invoices/upload", handler.Upload)
	return router
}

func multipartUpload(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestInvoicesUpload_Success(t *testing.T) {
	router := newInvoicesRouter()
	body, contentType := multipartUpload(t, map[string]string{"nota1.xml": sampleNFe})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/upload", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.UploadResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Len(t, response.Processed, 1)
	assert.Empty(t, response.Errors)
	assert.Equal(t, 1, response.Total)
	require.NotNil(t, response.Trip)
	assert.Len(t, response.Trip.Stops, 2)
}

func TestInvoicesUpload_PartialFailure(t *testing.T) {
	router := newInvoicesRouter()
	body, contentType := multipartUpload(t, map[string]string{
		"nota1.xml":    sampleNFe,
		"quebrada.xml": "<nfeProc><NFe>",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/upload", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.UploadResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Len(t, response.Processed, 1)
	assert.NotEmpty(t, response.Errors["quebrada.xml"])
	assert.Equal(t, 1, response.Failed)
}

func TestInvoicesUpload_EmptyBatch(t *testing.T) {
	router := newInvoicesRouter()
	body, contentType := multipartUpload(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/upload", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "EMPTY_BATCH", response.Code)
}
