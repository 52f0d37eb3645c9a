package partner

import (
	"time"

	"github.com/cargolink/nfe-trip-api/internal/config"
	"github.com/cargolink/nfe-trip-api/internal/models"
)

// Fixed stop time window policy: start one day out, two hours long.
// This is a placeholder the partner requires, not a scheduling
// computation.
const (
	windowLead     = 24 * time.Hour
	windowDuration = 2 * time.Hour
)

// TripPayload is the partner wire format for a trip
type TripPayload struct {
	ExternalID    string     `json:"externalId"`
	TransporterID string     `json:"transporterId"`
	CustomerID    string     `json:"customerId"`
	Driver        DriverRef  `json:"driver"`
	Vehicle       VehicleRef `json:"vehicle"`
	TripStops     []TripStop `json:"tripStops"`
}

// DriverRef identifies the driver on the partner side
type DriverRef struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// VehicleRef identifies the vehicle on the partner side
type VehicleRef struct {
	Plate string `json:"plate"`
}

// TripStop is one ordered stop in the partner wire format
type TripStop struct {
	Sequence        int          `json:"sequence"`
	Type            string       `json:"type"`
	CompanyName     string       `json:"companyName"`
	CompanyCNPJ     string       `json:"companyCnpj"`
	Address         AddressRef   `json:"address"`
	TimeWindow      TimeWindow   `json:"timeWindow"`
	Items           []StopItem   `json:"items"`
	ProofOfDelivery []ProofEntry `json:"proofOfDelivery,omitempty"`
}

// AddressRef is the partner address shape
type AddressRef struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"zipCode"`
}

// TimeWindow bounds the stop visit
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StopItem is one invoice carried through a stop, with units already
// converted to the partner's grams / cubic millimeters.
type StopItem struct {
	InvoiceNumber            string `json:"invoiceNumber"`
	AccessKey                string `json:"accessKey"`
	WeightInGrams            int64  `json:"weightInGrams"`
	VolumeInCubicMillimeters int64  `json:"volumeInCubicMillimeters"`
}

// ProofEntry requests proof-of-delivery for one invoice
type ProofEntry struct {
	AccessKey string `json:"accessKey"`
	Type      string `json:"type"`
}

// OrderPayload is the partner wire format for an imported transport order
type OrderPayload struct {
	ExternalID      string      `json:"externalId"`
	CustomerID      string      `json:"customerId"`
	Customer        CompanyRef  `json:"customer"`
	Origin          CompanyRef  `json:"origin"`
	Destination     CompanyRef  `json:"destination"`
	PickupWindow    TimeWindow  `json:"pickupWindow"`
	DeliveryWindow  TimeWindow  `json:"deliveryWindow"`
	Items           []OrderItem `json:"items"`
	MerchandiseType string      `json:"merchandiseType"`
	IsDangerous     bool        `json:"isDangerous"`
	NeedsEscort     bool        `json:"needsEscort"`
}

// CompanyRef identifies a company by CNPJ and name
type CompanyRef struct {
	CNPJ string `json:"cnpj"`
	Name string `json:"name"`
}

// OrderItem is one order line with converted units
type OrderItem struct {
	Code                     string  `json:"code"`
	Description              string  `json:"description"`
	Quantity                 int     `json:"quantity"`
	Unit                     string  `json:"unit"`
	UnitPrice                float64 `json:"unitPrice"`
	WeightInGrams            int64   `json:"weightInGrams"`
	VolumeInCubicMillimeters int64   `json:"volumeInCubicMillimeters"`
}

// GramsFromKg converts kilograms to grams, truncating to integer
func GramsFromKg(kg float64) int64 {
	return int64(kg * 1000)
}

// CubicMillimetersFromUnits converts cubic-unit counts to cubic millimeters
func CubicMillimetersFromUnits(units int) int64 {
	return int64(units) * 1_000_000_000
}

// CubicMillimetersFromCubicMeters converts cubic meters to cubic
// millimeters, truncating to integer
func CubicMillimetersFromCubicMeters(m3 float64) int64 {
	return int64(m3 * 1_000_000_000)
}

// Transformer maps the internal trip and order models into the partner
// wire schema. The mapping is pure and deterministic apart from the
// injected clock.
type Transformer struct {
	transporterID string
	customerID    string
	now           func() time.Time
}

// NewTransformer creates a transformer bound to the fixed
// organizational identities from configuration.
func NewTransformer(cfg config.PartnerConfig) *Transformer {
	return &Transformer{
		transporterID: cfg.TransporterID,
		customerID:    cfg.CustomerID,
		now:           time.Now,
	}
}

// TransformTrip renders a trip into the partner payload. A trip with no
// stops cannot be rendered.
func (t *Transformer) TransformTrip(trip *models.Trip) (*TripPayload, error) {
	if len(trip.Stops) == 0 {
		return nil, &TransformError{Reason: "trip has no stops"}
	}

	windowStart := t.now().Add(windowLead)
	window := TimeWindow{Start: windowStart, End: windowStart.Add(windowDuration)}

	payload := &TripPayload{
		ExternalID:    trip.ExternalID,
		TransporterID: t.transporterID,
		CustomerID:    t.customerID,
		Driver:        DriverRef{Name: trip.Driver.Name, Document: trip.Driver.Document},
		Vehicle:       VehicleRef{Plate: trip.Vehicle.Plate},
		TripStops:     make([]TripStop, 0, len(trip.Stops)),
	}

	for i, stop := range trip.Stops {
		tripStop := TripStop{
			Sequence:    i,
			Type:        string(stop.Type),
			CompanyName: stop.CompanyName,
			CompanyCNPJ: stop.CompanyCNPJ,
			Address:     transformAddress(stop.Address),
			TimeWindow:  window,
			Items:       make([]StopItem, 0, len(stop.Invoices)),
		}

		for _, invoice := range stop.Invoices {
			tripStop.Items = append(tripStop.Items, StopItem{
				InvoiceNumber:            invoice.Number,
				AccessKey:                invoice.AccessKey,
				WeightInGrams:            GramsFromKg(invoice.Transport.GrossWeight),
				VolumeInCubicMillimeters: CubicMillimetersFromUnits(invoice.Transport.Volume),
			})
		}

		// Delivery stops require proof-of-delivery metadata, one entry
		// per invoice; pickup stops do not.
		if stop.Type == models.StopTypeDelivery {
			for _, invoice := range stop.Invoices {
				tripStop.ProofOfDelivery = append(tripStop.ProofOfDelivery, ProofEntry{
					AccessKey: invoice.AccessKey,
					Type:      "INVOICE",
				})
			}
		}

		payload.TripStops = append(payload.TripStops, tripStop)
	}

	return payload, nil
}

// TransformOrder renders an imported order into the partner payload.
// The order's own pickup and delivery dates open the windows.
func (t *Transformer) TransformOrder(order *models.Order) (*OrderPayload, error) {
	if order.ID == "" {
		return nil, &TransformError{Reason: "order has no id"}
	}

	return &OrderPayload{
		ExternalID:     order.ID,
		CustomerID:     t.customerID,
		Customer:       CompanyRef{CNPJ: order.CustomerCNPJ, Name: order.CustomerName},
		Origin:         CompanyRef{CNPJ: order.OriginCNPJ, Name: order.OriginName},
		Destination:    CompanyRef{CNPJ: order.DestinationCNPJ, Name: order.DestinationName},
		PickupWindow:   TimeWindow{Start: order.PickupDate, End: order.PickupDate.Add(windowDuration)},
		DeliveryWindow: TimeWindow{Start: order.DeliveryDate, End: order.DeliveryDate.Add(windowDuration)},
		Items: []OrderItem{{
			Code:                     order.ItemCode,
			Description:              order.ItemDescription,
			Quantity:                 order.ItemQuantity,
			Unit:                     order.ItemUnit,
			UnitPrice:                order.ItemUnitPrice,
			WeightInGrams:            GramsFromKg(order.ItemWeight),
			VolumeInCubicMillimeters: CubicMillimetersFromCubicMeters(order.ItemVolume),
		}},
		MerchandiseType: order.MerchandiseType,
		IsDangerous:     order.IsDangerous,
		NeedsEscort:     order.NeedsEscort,
	}, nil
}

func transformAddress(a models.Address) AddressRef {
	return AddressRef{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
	}
}
