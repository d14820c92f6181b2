// Package calendar lays out month grids and places events into their days.
package calendar

import (
	"time"

	"simpleevents/internal/domain"
	"simpleevents/internal/fields"
)

// BuildGrid returns the Sunday-first grid for month of year: leading blanks up to
// the first weekday, one cell per day, then 7 minus the weekday of the day after
// month end as trailing blanks. When the month ends on a Saturday that is a full
// row of seven blanks.
func BuildGrid(month, year int) (*domain.CalendarGrid, error) {
	month, err := fields.SetMonth(month)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	leading := int(first.Weekday())
	days := DaysIn(month, year)
	trailing := 7 - int(first.AddDate(0, 0, days).Weekday())

	cells := make([]domain.DayCell, 0, leading+days+trailing)
	for range leading {
		cells = append(cells, domain.DayCell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, domain.DayCell{
			Day:  day,
			Date: first.AddDate(0, 0, day-1).Format(domain.DateLayout),
		})
	}
	for range trailing {
		cells = append(cells, domain.DayCell{Blank: true})
	}

	return &domain.CalendarGrid{Month: month, Year: year, Cells: cells}, nil
}

// DaysIn returns the number of days in month of year, leap years included.
func DaysIn(month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
