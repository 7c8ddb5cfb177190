package serial

import "strings"

// All is the selector value that disables a brand, capacity or status predicate.
const All = "all"

// Criteria narrows a record set. Empty selectors behave like All.
type Criteria struct {
	Search   string `json:"search"`
	Brand    string `json:"brand"`
	Capacity string `json:"capacity"`
	Status   string `json:"status"`
}

// DefaultCriteria matches every record.
func DefaultCriteria() Criteria {
	return Criteria{Brand: All, Capacity: All, Status: All}
}

// Match reports whether rec passes every predicate.
func (c Criteria) Match(rec Record) bool {
	if q := strings.ToLower(c.Search); q != "" {
		if !strings.Contains(strings.ToLower(rec.SerialNumber), q) &&
			!strings.Contains(strings.ToLower(rec.CustomerName), q) {
			return false
		}
	}
	if !selectorOff(c.Brand) && rec.Brand != c.Brand {
		return false
	}
	if !selectorOff(c.Capacity) {
		if rec.Capacity == nil || CapacityString(*rec.Capacity) != c.Capacity {
			return false
		}
	}
	if !selectorOff(c.Status) && string(NormalizeStatus(string(rec.Status))) != c.Status {
		return false
	}
	return true
}

// Filter returns the records matching c, preserving input order.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if c.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Brands lists distinct non-empty brands in first-seen order.
func Brands(records []Record) []string {
	seen := make(map[string]struct{})
	brands := []string{}
	for _, rec := range records {
		if rec.Brand == "" {
			continue
		}
		if _, ok := seen[rec.Brand]; ok {
			continue
		}
		seen[rec.Brand] = struct{}{}
		brands = append(brands, rec.Brand)
	}
	return brands
}

// DuplicateSerials reports serial numbers carried by more than one record.
// Writes do not enforce uniqueness.
func DuplicateSerials(records []Record) []Duplicate {
	index := make(map[string]int)
	groups := make([]Duplicate, 0)
	for _, rec := range records {
		key := strings.TrimSpace(rec.SerialNumber)
		if key == "" {
			continue
		}
		pos, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, Duplicate{SerialNumber: key, IDs: []string{rec.ID}})
			continue
		}
		groups[pos].IDs = append(groups[pos].IDs, rec.ID)
	}
	dups := []Duplicate{}
	for _, g := range groups {
		if len(g.IDs) > 1 {
			dups = append(dups, g)
		}
	}
	return dups
}

func selectorOff(v string) bool {
	return v == "" || v == All
}
