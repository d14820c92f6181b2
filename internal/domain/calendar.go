package domain

import "context"

// DayCell is one cell of a month grid: a blank pad or a numbered day with its events.
type DayCell struct {
	Blank    bool     `json:"blank"`
	Day      int      `json:"day,omitempty"`
	Date     string   `json:"date,omitempty"`
	EventIDs []string `json:"event_ids,omitempty"`
}

// CalendarGrid is a month laid out Sunday-first, flattened row by row.
// swagger:model CalendarGrid
type CalendarGrid struct {
	Month int       `json:"month"`
	Year  int       `json:"year"`
	Cells []DayCell `json:"cells"`
}

// Weeks slices the cells into rows of seven. A short final row is kept as-is.
func (g *CalendarGrid) Weeks() [][]DayCell {
	var weeks [][]DayCell
	for i := 0; i < len(g.Cells); i += 7 {
		end := min(i+7, len(g.Cells))
		weeks = append(weeks, g.Cells[i:end])
	}
	return weeks
}

// CalendarRequest holds the raw calendar parameters of a request.
type CalendarRequest struct {
	Month      int
	Year       int
	Type       int
	Visibility string
}

// CalendarMonth is a populated grid plus the events it references, keyed by id.
type CalendarMonth struct {
	Grid     *CalendarGrid     `json:"grid"`
	Events   map[string]*Event `json:"events"`
	Unplaced []string          `json:"unplaced,omitempty"`
}

// CalendarService builds populated month grids.
type CalendarService interface {
	Month(ctx context.Context, scope RequestScope, req CalendarRequest) (*CalendarMonth, error)
}
