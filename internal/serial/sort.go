package serial

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort presets offered by the list view.
const (
	PresetDefault      = "default"
	PresetSerialAsc    = "serial_asc"
	PresetSerialDesc   = "serial_desc"
	PresetCapacityAsc  = "capacity_asc"
	PresetCapacityDesc = "capacity_desc"
	PresetPriceAsc     = "price_asc"
	PresetPriceDesc    = "price_desc"
	PresetSaleAsc      = "sale_asc"
	PresetSaleDesc     = "sale_desc"
	PresetStatusStock  = "status_stock"
	PresetStatusSold   = "status_sold"
)

// Sortable columns.
const (
	ColumnSerialNumber = "serial_number"
	ColumnCapacity     = "capacity"
	ColumnSellingPrice = "selling_price"
	ColumnSaleDate     = "sale_date"
)

// Direction of an explicit column sort.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ColumnSort is an explicit column-click ordering. It overrides any preset
// while Column is set.
type ColumnSort struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// SortOption describes a preset for selectors.
type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SortOptions lists the presets in display order.
var SortOptions = []SortOption{
	{Value: PresetDefault, Label: "Default (In Stock → Capacity)"},
	{Value: PresetSerialAsc, Label: "Serial Number (A → Z)"},
	{Value: PresetSerialDesc, Label: "Serial Number (Z → A)"},
	{Value: PresetCapacityAsc, Label: "Capacity (Low → High)"},
	{Value: PresetCapacityDesc, Label: "Capacity (High → Low)"},
	{Value: PresetPriceAsc, Label: "Price (Low → High)"},
	{Value: PresetPriceDesc, Label: "Price (High → Low)"},
	{Value: PresetSaleDesc, Label: "Sale Date (Newest First)"},
	{Value: PresetSaleAsc, Label: "Sale Date (Oldest First)"},
	{Value: PresetStatusStock, Label: "Status (In Stock First)"},
	{Value: PresetStatusSold, Label: "Status (Sold First)"},
}

type compareFunc func(a, b Record) int

// Sort returns a stably ordered copy of records. A set column wins over preset;
// unknown columns keep input order and unknown presets fall back to default.
func Sort(records []Record, preset string, column ColumnSort) []Record {
	sorted := slices.Clone(records)
	if sorted == nil {
		sorted = []Record{}
	}
	var fn compareFunc
	if column.Column != "" {
		fn = columnCompare(column)
	} else {
		fn = presetCompare(preset)
	}
	if fn != nil {
		slices.SortStableFunc(sorted, fn)
	}
	return sorted
}

func columnCompare(column ColumnSort) compareFunc {
	var fn compareFunc
	switch column.Column {
	case ColumnSerialNumber:
		fn = naturalSerial()
	case ColumnCapacity:
		fn = byCapacity
	case ColumnSellingPrice:
		fn = byPrice
	case ColumnSaleDate:
		fn = bySaleDate
	default:
		return nil
	}
	if column.Direction == Desc {
		return reverse(fn)
	}
	return fn
}

func presetCompare(preset string) compareFunc {
	switch preset {
	case PresetSerialAsc:
		return naturalSerial()
	case PresetSerialDesc:
		return reverse(naturalSerial())
	case PresetCapacityAsc:
		return byCapacity
	case PresetCapacityDesc:
		return reverse(byCapacity)
	case PresetPriceAsc:
		return byPrice
	case PresetPriceDesc:
		return reverse(byPrice)
	case PresetSaleAsc:
		return bySaleDate
	case PresetSaleDesc:
		return reverse(bySaleDate)
	case PresetStatusStock:
		return byStockFirst
	case PresetStatusSold:
		return reverse(byStockFirst)
	default:
		return func(a, b Record) int {
			if c := byStockFirst(a, b); c != 0 {
				return c
			}
			return byCapacity(a, b)
		}
	}
}

// naturalSerial compares serial numbers with digit runs as numbers, ignoring
// case and accents. Collators are not safe for concurrent use, so each sort
// gets its own.
func naturalSerial() compareFunc {
	col := collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
	return func(a, b Record) int {
		return col.CompareString(a.SerialNumber, b.SerialNumber)
	}
}

// NaturalCompare orders two strings the way serial numbers are ordered.
func NaturalCompare(a, b string) int {
	return naturalSerial()(Record{SerialNumber: a}, Record{SerialNumber: b})
}

func byCapacity(a, b Record) int {
	return cmp.Compare(a.CapacityValue(), b.CapacityValue())
}

func byPrice(a, b Record) int {
	return cmp.Compare(a.PriceValue(), b.PriceValue())
}

func bySaleDate(a, b Record) int {
	return cmp.Compare(a.SaleDate, b.SaleDate)
}

func byStockFirst(a, b Record) int {
	return cmp.Compare(stockRank(a), stockRank(b))
}

func stockRank(r Record) int {
	if r.IsSold() {
		return 1
	}
	return 0
}

func reverse(fn compareFunc) compareFunc {
	return func(a, b Record) int {
		return fn(b, a)
	}
}
