package models

// StopType identifies whether a stop is a pickup or a delivery point
type StopType string

const (
	StopTypePickup   StopType = "PICKUP"
	StopTypeDelivery StopType = "DELIVERY"
)

// Stop is a single physical location in a trip, holding the invoices
// picked up or delivered there. Sequence reflects insertion order.
type Stop struct {
	Type        StopType  `json:"type" example:"PICKUP"`
	Sequence    int       `json:"sequence" example:"0"`
	CompanyName string    `json:"companyName" example:"EMPRESA EXEMPLO LTDA"`
	CompanyCNPJ string    `json:"companyCnpj" example:"11222333000181"`
	Address     Address   `json:"address"`
	Invoices    []Invoice `json:"notes"`
}

// Driver holds driver identification for a trip
type Driver struct {
	Name     string `json:"name" example:"JOÃO DA SILVA"`
	Document string `json:"document" example:"12345678900"`
}

// Vehicle holds vehicle identification for a trip
type Vehicle struct {
	Plate string `json:"plate" example:"ABC1D23"`
}

// Trip is an ordered multi-stop shipment submitted to the logistics
// partner. ExternalID is the idempotency key for the integration; when
// empty the orchestrator generates one.
type Trip struct {
	ExternalID string  `json:"externalId" example:"VIAGEM-2024-001"`
	Driver     Driver  `json:"driver"`
	Vehicle    Vehicle `json:"vehicle"`
	Stops      []Stop  `json:"stops"`
}
