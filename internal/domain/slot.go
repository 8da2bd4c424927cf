package domain

import "time"

// TimeSlot represents a candidate reservation start time with its availability
// Constructed fresh on every availability query, never persisted
type TimeSlot struct {
	Time                 string    `json:"time"`     // human label, "19:00"
	Datetime             time.Time `json:"datetime"` // start instant
	Available            bool      `json:"available"`
	AvailableTablesCount int       `json:"availableTablesCount"`
	SuggestedTable       *Table    `json:"suggestedTable,omitempty"`
}

// IsBookable returns true if at least one table survives the capacity and overlap filters
func (s *TimeSlot) IsBookable() bool {
	return s.Available && s.AvailableTablesCount > 0
}
