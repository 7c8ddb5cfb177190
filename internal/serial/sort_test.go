package serial

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serials(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.SerialNumber)
	}
	return out
}

func TestDefaultSortStockFirstThenCapacity(t *testing.T) {
	var b2, a1 Record
	require.NoError(t, b2.UnmarshalJSON([]byte(`{"serial_number":"B2","capacity":"50kg","status":"Sold"}`)))
	require.NoError(t, a1.UnmarshalJSON([]byte(`{"serial_number":"A1","capacity":"30kg","status":"In Stock"}`)))

	got := Sort([]Record{b2, a1}, PresetDefault, ColumnSort{})
	assert.Equal(t, []string{"A1", "B2"}, serials(got))
}

func TestDefaultSortOnlySeparatesByStatus(t *testing.T) {
	records := []Record{
		{SerialNumber: "S1", Capacity: ptr(10), Status: StatusSold},
		{SerialNumber: "I1", Capacity: ptr(100), Status: StatusInStock},
		{SerialNumber: "I2", Capacity: ptr(20), Status: StatusInStock},
		{SerialNumber: "S2", Capacity: ptr(5), Status: StatusSold},
	}
	got := Sort(records, "unknown-preset", ColumnSort{})
	assert.Equal(t, []string{"I2", "I1", "S2", "S1"}, serials(got))
}

func TestNaturalSerialOrder(t *testing.T) {
	records := []Record{{SerialNumber: "A10"}, {SerialNumber: "A2"}, {SerialNumber: "A1"}}
	assert.Equal(t, []string{"A1", "A2", "A10"}, serials(Sort(records, PresetSerialAsc, ColumnSort{})))
	assert.Equal(t, []string{"A10", "A2", "A1"}, serials(Sort(records, PresetSerialDesc, ColumnSort{})))
	assert.Negative(t, NaturalCompare("a2", "A10"))
	assert.Zero(t, NaturalCompare("ab1", "AB1"))
}

func TestSerialDescIsReverseOfAsc(t *testing.T) {
	records := []Record{{SerialNumber: "X9"}, {SerialNumber: "B12"}, {SerialNumber: "B3"}, {SerialNumber: "Z1"}}
	asc := serials(Sort(records, PresetSerialAsc, ColumnSort{}))
	desc := serials(Sort(records, PresetSerialDesc, ColumnSort{}))
	slices.Reverse(asc)
	assert.Equal(t, asc, desc)
}

func TestSortIsStable(t *testing.T) {
	records := []Record{
		{ID: "1", SerialNumber: "A", Capacity: ptr(50)},
		{ID: "2", SerialNumber: "B", Capacity: ptr(30)},
		{ID: "3", SerialNumber: "C", Capacity: ptr(50)},
		{ID: "4", SerialNumber: "D", Capacity: ptr(30)},
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(Sort(records, PresetCapacityAsc, ColumnSort{})))
	assert.Equal(t, []string{"1", "3", "2", "4"}, ids(Sort(records, PresetCapacityDesc, ColumnSort{})))
}

func TestSortMissingValuesCountAsZero(t *testing.T) {
	records := []Record{
		{ID: "priced", SellingPrice: ptr(1200)},
		{ID: "blank"},
	}
	assert.Equal(t, []string{"blank", "priced"}, ids(Sort(records, PresetPriceAsc, ColumnSort{})))
	assert.Equal(t, []string{"priced", "blank"}, ids(Sort(records, PresetPriceDesc, ColumnSort{})))
}

func TestSortBySaleDate(t *testing.T) {
	records := []Record{
		{ID: "mid", SaleDate: "2024-05-01"},
		{ID: "none"},
		{ID: "late", SaleDate: "2024-12-31"},
	}
	assert.Equal(t, []string{"none", "mid", "late"}, ids(Sort(records, PresetSaleAsc, ColumnSort{})))
	assert.Equal(t, []string{"late", "mid", "none"}, ids(Sort(records, PresetSaleDesc, ColumnSort{})))
}

func TestSortStatusPresets(t *testing.T) {
	records := []Record{
		{ID: "s", Status: StatusSold},
		{ID: "i", Status: StatusInStock},
	}
	assert.Equal(t, []string{"i", "s"}, ids(Sort(records, PresetStatusStock, ColumnSort{})))
	assert.Equal(t, []string{"s", "i"}, ids(Sort(records, PresetStatusSold, ColumnSort{})))
}

func TestColumnSortOverridesPreset(t *testing.T) {
	records := []Record{
		{ID: "1", SerialNumber: "B", SellingPrice: ptr(10)},
		{ID: "2", SerialNumber: "A", SellingPrice: ptr(30)},
		{ID: "3", SerialNumber: "C", SellingPrice: ptr(20)},
	}
	got := Sort(records, PresetSerialAsc, ColumnSort{Column: ColumnSellingPrice, Direction: Desc})
	assert.Equal(t, []string{"2", "3", "1"}, ids(got))
}

func TestUnknownColumnKeepsInputOrder(t *testing.T) {
	records := []Record{{ID: "b", SerialNumber: "B"}, {ID: "a", SerialNumber: "A"}}
	got := Sort(records, PresetSerialAsc, ColumnSort{Column: "brand", Direction: Asc})
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	records := []Record{{ID: "b", SerialNumber: "B"}, {ID: "a", SerialNumber: "A"}}
	_ = Sort(records, PresetSerialAsc, ColumnSort{})
	assert.Equal(t, []string{"b", "a"}, ids(records))
	assert.NotNil(t, Sort(nil, PresetDefault, ColumnSort{}))
}
