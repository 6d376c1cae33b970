package types

// CompletenessReport summarizes which identified units were actually changed by an
// edit pass. It is a reporting mechanism only; it never triggers retries.
type CompletenessReport struct {
	IdentifiedCount int            `json:"identified_count"`
	EditedCount     int            `json:"edited_count"`
	Missing         []UnitPath     `json:"missing,omitempty"`
	EditCounts      map[string]int `json:"edit_counts,omitempty"`
	Score           float64        `json:"completeness_score"`
}

// MissingPaths renders the missing units as canonical path strings for logging
func (r *CompletenessReport) MissingPaths() []string {
	paths := make([]string, len(r.Missing))
	for i, unit := range r.Missing {
		paths[i] = unit.String()
	}
	return paths
}
