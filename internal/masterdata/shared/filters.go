package shared

// DefaultLimit caps list endpoints when no limit is requested.
const DefaultLimit = 50

// ListFilters narrows master data list queries.
type ListFilters struct {
	Company string
	Search  string
	Limit   int
}

// EffectiveLimit returns Limit or DefaultLimit when unset.
func (f ListFilters) EffectiveLimit() int {
	if f.Limit <= 0 || f.Limit > 500 {
		return DefaultLimit
	}
	return f.Limit
}
