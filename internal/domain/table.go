package domain

import "time"

// Table represents a physical table in a bar
type Table struct {
	ID       int64
	BarID    int64
	Number   int // display label, unique within a bar
	Capacity int // maximum party size seatable
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSeat returns true if the table is active and fits the party
func (t *Table) CanSeat(partySize int) bool {
	return t.Active && t.Capacity >= partySize
}

// TablesFilter фильтр для получения столов бара
type TablesFilter struct {
	BarID      int64 // Обязательный параметр
	ActiveOnly bool  // Только активные столы
}
