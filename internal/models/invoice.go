package models

// Address represents a physical address extracted from an NFe document
type Address struct {
	Street       string `json:"logradouro" example:"RUA EXEMPLO"`
	Number       string `json:"numero" example:"123"`
	Complement   string `json:"complemento,omitempty" example:"SALA 456"`
	Neighborhood string `json:"bairro" example:"CENTRO"`
	City         string `json:"municipio" example:"SÃO PAULO"`
	State        string `json:"uf" example:"SP"`
	PostalCode   string `json:"cep" example:"01234567"`
}

// Party represents the sender or recipient of an invoice
type Party struct {
	CNPJ    string  `json:"cnpj" example:"11222333000181"`
	Name    string  `json:"nome" example:"EMPRESA EXEMPLO LTDA"`
	Address Address `json:"endereco"`
}

// Transport holds the volume and weight information of an invoice.
// Volume is a unit count; GrossWeight is in kilograms.
type Transport struct {
	Volume      int     `json:"volume" example:"3"`
	GrossWeight float64 `json:"pesoBruto" example:"12.5"`
}

// Invoice is the canonical record extracted from one NFe document
type Invoice struct {
	AccessKey string    `json:"chaveAcesso" example:"35200114200166000187550010000000046550000046"`
	Number    string    `json:"numeroNF" example:"4"`
	Sender    Party     `json:"remetente"`
	Recipient Party     `json:"destinatario"`
	Transport Transport `json:"transporte"`
}
