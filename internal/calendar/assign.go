package calendar

import (
	"sort"
	"time"

	"simpleevents/internal/domain"
)

type placed struct {
	start time.Time
	title string
	id    string
}

// AssignEvents attaches to each day cell of g the ids of the events starting
// between 00:00:00 and 23:59:59 of that day in loc, ordered by datetime then
// title. Events with equal keys keep their order in events. It returns the ids
// of events whose datetime could not be parsed; events outside the month are
// ignored.
func AssignEvents(g *domain.CalendarGrid, events []*domain.Event, loc *time.Location) (unplaced []string) {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]placed, 0, len(events))
	for _, e := range events {
		start, err := e.Start(loc)
		if err != nil {
			unplaced = append(unplaced, e.ID)
			continue
		}
		sorted = append(sorted, placed{start: start, title: e.Title, id: e.ID})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].start.Equal(sorted[j].start) {
			return sorted[i].start.Before(sorted[j].start)
		}
		return sorted[i].title < sorted[j].title
	})

	for i := range g.Cells {
		cell := &g.Cells[i]
		if cell.Blank {
			continue
		}
		dayStart := time.Date(g.Year, time.Month(g.Month), cell.Day, 0, 0, 0, 0, loc)
		dayEnd := time.Date(g.Year, time.Month(g.Month), cell.Day, 23, 59, 59, 0, loc)

		lo := sort.Search(len(sorted), func(k int) bool {
			return !sorted[k].start.Before(dayStart)
		})
		cell.EventIDs = nil
		for k := lo; k < len(sorted) && !sorted[k].start.After(dayEnd); k++ {
			cell.EventIDs = append(cell.EventIDs, sorted[k].id)
		}
	}
	return unplaced
}
