package models

import "time"

// Order represents a transport order imported from a CSV file
type Order struct {
	ID              string    `json:"id" example:"PED-001"`
	CustomerCNPJ    string    `json:"customerCNPJ" example:"11222333000181"`
	CustomerName    string    `json:"customerName" example:"CLIENTE EXEMPLO LTDA"`
	OriginCNPJ      string    `json:"originCNPJ" example:"44555666000172"`
	OriginName      string    `json:"originName" example:"CD SAO PAULO"`
	PickupDate      time.Time `json:"pickupDate" example:"2024-01-15T08:00:00Z"`
	DestinationCNPJ string    `json:"destinationCNPJ" example:"77888999000163"`
	DestinationName string    `json:"destinationName" example:"LOJA CURITIBA"`
	DeliveryDate    time.Time `json:"deliveryDate" example:"2024-01-16T14:00:00Z"`
	ItemCode        string    `json:"itemCode" example:"SKU-123"`
	ItemDescription string    `json:"itemDescription" example:"CAIXA 40X40"`
	ItemVolume      float64   `json:"itemVolume" example:"0.5"`
	ItemWeight      float64   `json:"itemWeight" example:"12.5"`
	ItemQuantity    int       `json:"itemQuantity" example:"10"`
	ItemUnit        string    `json:"itemUnit" example:"UN"`
	ItemUnitPrice   float64   `json:"itemUnitPrice" example:"99.9"`
	MerchandiseType string    `json:"merchandiseType" example:"GERAL"`
	IsDangerous     bool      `json:"isDangerous" example:"false"`
	NeedsEscort     bool      `json:"needsEscort" example:"false"`
}
