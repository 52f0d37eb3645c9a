package trip

import (
	"testing"

	"github.com/cargolink/nfe-trip-api/internal/config"
	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/nfe"
	"github.com/cargolink/nfe-trip-api/internal/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full upload-to-payload flow: one NFe from São Paulo to Curitiba
// becomes a two-stop trip with converted units.
func TestPipeline_SingleInvoiceToPartnerPayload(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35240111222333000181550010000004561000004567" versao="4.00">
      <ide><nNF>456</nNF></ide>
      <emit>
        <CNPJ>11222333000181</CNPJ>
        <xNome>REMETENTE LTDA</xNome>
        <enderEmit>
          <xLgr>Rua das Flores</xLgr>
          <nro>100</nro>
          <xBairro>Centro</xBairro>
          <xMun>São Paulo</xMun>
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
      <transp><vol><qVol>2</qVol><pesoB>10</pesoB></vol></transp>
    </infNFe>
  </NFe>
</nfeProc>`)

	doc, err := nfe.Parse(raw)
	require.NoError(t, err)
	require.True(t, nfe.Validate(doc).Valid)

	invoice, err := nfe.Extract(doc)
	require.NoError(t, err)

	assembled := Assemble([]models.Invoice{*invoice})
	assembled.ExternalID = "VIAGEM-456"

	require.Len(t, assembled.Stops, 2)
	assert.Equal(t, models.StopTypePickup, assembled.Stops[0].Type)
	assert.Equal(t, "São Paulo", assembled.Stops[0].Address.City)
	assert.Equal(t, models.StopTypeDelivery, assembled.Stops[1].Type)
	assert.Equal(t, "Curitiba", assembled.Stops[1].Address.City)

	transformer := partner.NewTransformer(config.PartnerConfig{
		TransporterID: "transporter-1",
		CustomerID:    "customer-1",
	})
	payload, err := transformer.TransformTrip(assembled)
	require.NoError(t, err)

	require.Len(t, payload.TripStops, 2)
	assert.Equal(t, 0, payload.TripStops[0].Sequence)
	assert.Equal(t, "PICKUP", payload.TripStops[0].Type)
	assert.Equal(t, 1, payload.TripStops[1].Sequence)
	assert.Equal(t, "DELIVERY", payload.TripStops[1].Type)

	item := payload.TripStops[0].Items[0]
	assert.Equal(t, int64(10000), item.WeightInGrams)
	assert.Equal(t, int64(2_000_000_000), item.VolumeInCubicMillimeters)
	assert.Equal(t, "35240111222333000181550010000004561000004567", item.AccessKey)
}
