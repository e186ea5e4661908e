package filter

import "encoding/json"

// itemFilterWire mirrors the exact §6 wire shape of the top-level filter.
// Declaring it explicitly (rather than relying on ItemFilter's own struct
// tags for marshaling) keeps the JSON shape stable even if the Go field
// set grows. Condition and Rule marshal through their own struct tags.

type itemFilterWire struct {
	Conditions []Condition `json:"conditions"`
	Match      MatchMode   `json:"match"`
}

// MarshalJSON renders the filter with "conditions" preceding "match", the
// order used throughout spec.md §6.
func (f ItemFilter) MarshalJSON() ([]byte, error) {
	conds := f.Conditions
	if conds == nil {
		conds = []Condition{}
	}
	return json.Marshal(itemFilterWire{Conditions: conds, Match: f.Match})
}

// UnmarshalJSON parses the §6 wire shape.
func (f *ItemFilter) UnmarshalJSON(data []byte) error {
	var wire itemFilterWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	f.Conditions = wire.Conditions
	f.Match = wire.Match
	return nil
}
