package serial

import "github.com/scaledesk/scaledesk/internal/shared"

// View is the list state for one filter → sort → paginate pass. Methods return
// updated copies; a View is never mutated in place.
type View struct {
	Criteria Criteria   `json:"criteria"`
	Preset   string     `json:"preset"`
	Column   ColumnSort `json:"column"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// Result is what a pass over a snapshot produces.
type Result struct {
	Items      []Record          `json:"items"`
	Pagination shared.Pagination `json:"pagination"`
	Brands     []string          `json:"brands"`
	View       View              `json:"view"`
}

// NewView returns the initial list state.
func NewView() View {
	return View{
		Criteria: DefaultCriteria(),
		Preset:   PresetDefault,
		Column:   ColumnSort{Direction: Asc},
		Page:     1,
		PageSize: shared.DefaultPageSize,
	}
}

// WithCriteria replaces the filter and returns to the first page.
func (v View) WithCriteria(c Criteria) View {
	v.Criteria = c
	v.Page = 1
	return v
}

// WithPreset selects a preset sort and clears any column sort.
func (v View) WithPreset(preset string) View {
	v.Preset = preset
	v.Column = ColumnSort{Direction: Asc}
	v.Page = 1
	return v
}

// ToggleColumn sorts by column, flipping direction when it is already the
// active column. The preset is cleared.
func (v View) ToggleColumn(column string) View {
	if v.Column.Column == column {
		if v.Column.Direction == Asc {
			v.Column.Direction = Desc
		} else {
			v.Column.Direction = Asc
		}
	} else {
		v.Column = ColumnSort{Column: column, Direction: Asc}
	}
	v.Preset = ""
	v.Page = 1
	return v
}

// WithPageSize changes the page size and returns to the first page.
func (v View) WithPageSize(size int) View {
	v.PageSize = shared.NormalizePageSize(size)
	v.Page = 1
	return v
}

// WithPage moves to page n.
func (v View) WithPage(n int) View {
	if n < 1 {
		n = 1
	}
	v.Page = n
	return v
}

// Ordered filters and sorts the snapshot without paginating it.
func (v View) Ordered(snapshot []Record) []Record {
	return Sort(Filter(snapshot, v.Criteria), v.Preset, v.Column)
}

// Apply runs the full pipeline over snapshot.
func (v View) Apply(snapshot []Record) Result {
	ordered := v.Ordered(snapshot)
	size := shared.NormalizePageSize(v.PageSize)
	pagination := shared.NewPagination(v.Page, size, len(ordered))
	return Result{
		Items:      shared.Paginate(ordered, pagination.Page, pagination.PerPage),
		Pagination: pagination,
		Brands:     Brands(snapshot),
		View:       v,
	}
}
