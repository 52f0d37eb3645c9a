// Package orders imports transport orders from CSV uploads. The file
// contract is a fixed headered layout; each row maps to one Order and
// row failures are reported individually, never aborting the import.
package orders

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cargolink/nfe-trip-api/internal/models"
	"github.com/cargolink/nfe-trip-api/internal/utils"
)

// dateLayout is the DD/MM/YYYY HH:MM format the import template uses
const dateLayout = "02/01/2006 15:04"

// ErrEmptyFile is returned when the CSV has no data rows
var ErrEmptyFile = errors.New("CSV file has no data rows")

var requiredColumns = []string{
	"id",
	"customer_cnpj", "customer_name",
	"origin_cnpj", "origin_name", "pickup_date",
	"destination_cnpj", "destination_name", "delivery_date",
	"item_code", "item_description", "item_volume", "item_weight",
	"item_quantity", "item_unit", "item_unit_price",
	"merchandise_type", "is_dangerous", "needs_escort",
}

// Result collects the parsed orders and the per-row errors
type Result struct {
	Orders []models.Order
	Errors []string
}

// Parse reads a headered CSV file into Order records. Invalid rows are
// reported with their line number and skipped.
func Parse(data []byte) (*Result, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", name)
		}
	}

	result := &Result{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		order, err := parseRow(row, columns)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		result.Orders = append(result.Orders, *order)
	}

	if len(result.Orders) == 0 && len(result.Errors) == 0 {
		return nil, ErrEmptyFile
	}
	return result, nil
}

func parseRow(row []string, columns map[string]int) (*models.Order, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	order := &models.Order{
		ID:              field("id"),
		CustomerName:    field("customer_name"),
		OriginName:      field("origin_name"),
		DestinationName: field("destination_name"),
		ItemCode:        field("item_code"),
		ItemDescription: field("item_description"),
		ItemUnit:        field("item_unit"),
		MerchandiseType: field("merchandise_type"),
	}

	if order.ID == "" {
		return nil, errors.New("id is empty")
	}

	for _, c := range []struct {
		column string
		target *string
	}{
		{"customer_cnpj", &order.CustomerCNPJ},
		{"origin_cnpj", &order.OriginCNPJ},
		{"destination_cnpj", &order.DestinationCNPJ},
	} {
		cleaned := utils.CleanCNPJ(field(c.column))
		if !utils.IsValidCNPJ(cleaned) {
			return nil, fmt.Errorf("invalid %s %q", c.column, field(c.column))
		}
		*c.target = cleaned
	}

	var err error
	if order.PickupDate, err = time.Parse(dateLayout, field("pickup_date")); err != nil {
		return nil, fmt.Errorf("invalid pickup_date %q, expected DD/MM/YYYY HH:MM", field("pickup_date"))
	}
	if order.DeliveryDate, err = time.Parse(dateLayout, field("delivery_date")); err != nil {
		return nil, fmt.Errorf("invalid delivery_date %q, expected DD/MM/YYYY HH:MM", field("delivery_date"))
	}

	if order.ItemVolume, err = strconv.ParseFloat(field("item_volume"), 64); err != nil {
		return nil, fmt.Errorf("invalid item_volume %q", field("item_volume"))
	}
	if order.ItemWeight, err = strconv.ParseFloat(field("item_weight"), 64); err != nil {
		return nil, fmt.Errorf("invalid item_weight %q", field("item_weight"))
	}
	if order.ItemQuantity, err = strconv.Atoi(field("item_quantity")); err != nil {
		return nil, fmt.Errorf("invalid item_quantity %q", field("item_quantity"))
	}
	if order.ItemUnitPrice, err = strconv.ParseFloat(field("item_unit_price"), 64); err != nil {
		return nil, fmt.Errorf("invalid item_unit_price %q", field("item_unit_price"))
	}

	order.IsDangerous = parseBool(field("is_dangerous"))
	order.NeedsEscort = parseBool(field("needs_escort"))

	return order, nil
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.ToLower(s))
	return err == nil && v
}
