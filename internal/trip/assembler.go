// Package trip groups canonical invoices into an ordered multi-stop
// trip: each invoice contributes its sender location as a pickup stop
// and its recipient location as a delivery stop.
package trip

import "github.com/cargolink/nfe-trip-api/internal/models"

// stopKey identifies a stop by role and geography. The role is part of
// the key so a pickup and a delivery in the same municipality stay two
// distinct stops instead of colliding textually.
type stopKey struct {
	role  models.StopType
	city  string
	state string
}

// AssembleStops folds invoices, in order, into stops keyed by
// (municipality, state) per role. Stops keep first-seen order, pickups
// and deliveries interleaved as encountered; each invoice is appended
// to both its pickup and its delivery stop.
func AssembleStops(invoices []models.Invoice) []models.Stop {
	index := make(map[stopKey]int)
	stops := make([]models.Stop, 0, 2*len(invoices))

	place := func(role models.StopType, party models.Party, invoice models.Invoice) []models.Stop {
		key := stopKey{role: role, city: party.Address.City, state: party.Address.State}
		i, ok := index[key]
		if !ok {
			i = len(stops)
			index[key] = i
			stops = append(stops, models.Stop{
				Type:        role,
				Sequence:    i,
				CompanyName: party.Name,
				CompanyCNPJ: party.CNPJ,
				Address:     party.Address,
			})
		}
		stops[i].Invoices = append(stops[i].Invoices, invoice)
		return stops
	}

	for _, invoice := range invoices {
		stops = place(models.StopTypePickup, invoice.Sender, invoice)
		stops = place(models.StopTypeDelivery, invoice.Recipient, invoice)
	}

	return stops
}

// Assemble builds a trip skeleton from invoices. Driver, vehicle and
// external id are filled in by the caller before submission.
func Assemble(invoices []models.Invoice) *models.Trip {
	return &models.Trip{Stops: AssembleStops(invoices)}
}
