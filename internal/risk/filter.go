package risk

import "strings"

// Filter selects students by bucket on the recommendation page.
type Filter int

const (
	FilterAll Filter = iota
	FilterHigh
	FilterMedium
	FilterLow
)

// Filters lists the filters in display order.
var Filters = []Filter{FilterAll, FilterHigh, FilterMedium, FilterLow}

// DisplayName returns the label shown in the dashboard.
func (f Filter) DisplayName() string {
	switch f {
	case FilterHigh:
		return High.DisplayName()
	case FilterMedium:
		return Medium.DisplayName()
	case FilterLow:
		return Low.DisplayName()
	default:
		return "All Students"
	}
}

// Matches reports whether a student in bucket b passes the filter.
func (f Filter) Matches(b Bucket) bool {
	switch f {
	case FilterHigh:
		return b == High
	case FilterMedium:
		return b == Medium
	case FilterLow:
		return b == Low
	default:
		return true
	}
}

// ParseFilter parses "all", "high", "medium" or "low". Empty means all.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return FilterAll, nil
	}
	b, err := ParseBucket(s)
	if err != nil {
		return FilterAll, err
	}
	return FilterFor(b), nil
}

// FilterFor returns the filter that selects exactly bucket b.
func FilterFor(b Bucket) Filter {
	switch b {
	case High:
		return FilterHigh
	case Medium:
		return FilterMedium
	default:
		return FilterLow
	}
}
