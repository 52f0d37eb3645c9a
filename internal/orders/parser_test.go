package orders

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "id,customer_cnpj,customer_name,origin_cnpj,origin_name,pickup_date," +
	"destination_cnpj,destination_name,delivery_date,item_code,item_description," +
	"item_volume,item_weight,item_quantity,item_unit,item_unit_price," +
	"merchandise_type,is_dangerous,needs_escort"

const validRow = `PED-001,11.222.333/0001-81,CLIENTE LTDA,11444777000161,CD SAO PAULO,15/01/2024 08:00,` +
	`11222333000181,LOJA CURITIBA,16/01/2024 14:00,SKU-1,CAIXA 40X40,0.5,12.5,10,UN,99.9,GERAL,false,true`

func csvFile(rows ...string) []byte {
	return []byte(csvHeader + "\n" + strings.Join(rows, "\n"))
}

func TestParse_ValidFile(t *testing.T) {
	result, err := Parse(csvFile(validRow))
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)
	assert.Empty(t, result.Errors)

	order := result.Orders[0]
	assert.Equal(t, "PED-001", order.ID)
	assert.Equal(t, "11222333000181", order.CustomerCNPJ)
	assert.Equal(t, "CLIENTE LTDA", order.CustomerName)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), order.PickupDate)
	assert.Equal(t, time.Date(2024, 1, 16, 14, 0, 0, 0, time.UTC), order.DeliveryDate)
	assert.Equal(t, 0.5, order.ItemVolume)
	assert.Equal(t, 12.5, order.ItemWeight)
	assert.Equal(t, 10, order.ItemQuantity)
	assert.Equal(t, 99.9, order.ItemUnitPrice)
	assert.False(t, order.IsDangerous)
	assert.True(t, order.NeedsEscort)
}

func TestParse_FormattedCNPJCleaned(t *testing.T) {
	result, err := Parse(csvFile(validRow))
	require.NoError(t, err)

	// Punctuation stripped, digits kept
	assert.Equal(t, "11222333000181", result.Orders[0].CustomerCNPJ)
}

func TestParse_BadRowsReportedGoodRowsKept(t *testing.T) {
	badDate := strings.Replace(validRow, "15/01/2024 08:00", "2024-01-15", 1)
	badCNPJ := strings.Replace(validRow, "11.222.333/0001-81", "00000000000000", 1)

	result, err := Parse(csvFile(validRow, badDate, badCNPJ))
	require.NoError(t, err)

	assert.Len(t, result.Orders, 1)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "row 3:")
	assert.Contains(t, result.Errors[0], "pickup_date")
	assert.Contains(t, result.Errors[1], "row 4:")
	assert.Contains(t, result.Errors[1], "customer_cnpj")
}

func TestParse_MissingColumn(t *testing.T) {
	header := strings.Replace(csvHeader, "needs_escort", "escolta", 1)
	_, err := Parse([]byte(header + "\n" + validRow))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs_escort")
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse(csvFile())
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_EmptyID(t *testing.T) {
	row := strings.Replace(validRow, "PED-001", "", 1)
	result, err := Parse(csvFile(row))
	require.NoError(t, err)

	assert.Empty(t, result.Orders)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "id is empty")
}
