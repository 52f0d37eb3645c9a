package nfe

import (
	"strconv"

	"github.com/cargolink/nfe-trip-api/internal/models"
)

// Structural elements required for extraction. Without the parties and
// their address blocks no stop grouping is possible, so their absence
// is non-recoverable.
var structuralPaths = []struct {
	path FieldPath
	name string
}{
	{FieldPath{"emit"}, "emit"},
	{FieldPath{"emit", "enderEmit"}, "emit/enderEmit"},
	{FieldPath{"dest"}, "dest"},
	{FieldPath{"dest", "enderDest"}, "dest/enderDest"},
}

// Extract converts a parsed document into a canonical Invoice. Textual
// fields default to empty string when absent. The transport block is
// optional: volume defaults to 1 and weight to 0 when absent or
// non-numeric, because some source documents omit transport metadata
// while the shipment is still usable.
func Extract(doc *Document) (*models.Invoice, error) {
	for _, s := range structuralPaths {
		if !doc.Has(s.path) {
			return nil, &ExtractionError{Element: s.name}
		}
	}

	invoice := &models.Invoice{
		AccessKey: doc.AccessKey(),
		Number:    doc.Text(FieldPath{"ide", "nNF"}),
		Sender: models.Party{
			CNPJ:    doc.Text(FieldPath{"emit", "CNPJ"}),
			Name:    doc.Text(FieldPath{"emit", "xNome"}),
			Address: extractAddress(doc, "emit", "enderEmit"),
		},
		Recipient: models.Party{
			CNPJ:    doc.Text(FieldPath{"dest", "CNPJ"}),
			Name:    doc.Text(FieldPath{"dest", "xNome"}),
			Address: extractAddress(doc, "dest", "enderDest"),
		},
		Transport: extractTransport(doc),
	}

	return invoice, nil
}

func extractAddress(doc *Document, party, block string) models.Address {
	return models.Address{
		Street:       doc.Text(FieldPath{party, block, "xLgr"}),
		Number:       doc.Text(FieldPath{party, block, "nro"}),
		Complement:   doc.Text(FieldPath{party, block, "xCpl"}),
		Neighborhood: doc.Text(FieldPath{party, block, "xBairro"}),
		City:         doc.Text(FieldPath{party, block, "xMun"}),
		State:        doc.Text(FieldPath{party, block, "UF"}),
		PostalCode:   doc.Text(FieldPath{party, block, "CEP"}),
	}
}

func extractTransport(doc *Document) models.Transport {
	transport := models.Transport{Volume: 1, GrossWeight: 0}

	if vol, err := strconv.Atoi(doc.Text(FieldPath{"transp", "vol", "qVol"})); err == nil && vol >= 0 {
		transport.Volume = vol
	}
	if weight, err := strconv.ParseFloat(doc.Text(FieldPath{"transp", "vol", "pesoB"}), 64); err == nil && weight >= 0 {
		transport.GrossWeight = weight
	}

	return transport
}
