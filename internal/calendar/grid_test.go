package calendar

import (
	"testing"
	"time"

	"simpleevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countCells(g *domain.CalendarGrid) (leading, days, trailing int) {
	i := 0
	for ; i < len(g.Cells) && g.Cells[i].Blank; i++ {
		leading++
	}
	for ; i < len(g.Cells) && !g.Cells[i].Blank; i++ {
		days++
	}
	for ; i < len(g.Cells) && g.Cells[i].Blank; i++ {
		trailing++
	}
	return leading, days, trailing
}

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name     string
		month    int
		year     int
		leading  int
		days     int
		trailing int
	}{
		{"february leap year", 2, 2024, 4, 29, 2},
		{"february common year", 2, 2023, 3, 28, 4},
		{"february 2015 fills four rows", 2, 2015, 0, 28, 7},
		{"august 2024 ends on saturday", 8, 2024, 4, 31, 7},
		{"september 2024 starts on sunday", 9, 2024, 0, 30, 5},
		{"century not leap", 2, 1900, 4, 28, 3},
		{"four hundred leap", 2, 2000, 2, 29, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGrid(tt.month, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.month, g.Month)
			assert.Equal(t, tt.year, g.Year)

			leading, days, trailing := countCells(g)
			assert.Equal(t, tt.leading, leading, "leading blanks")
			assert.Equal(t, tt.days, days, "day cells")
			assert.Equal(t, tt.trailing, trailing, "trailing blanks")
			assert.Len(t, g.Cells, tt.leading+tt.days+tt.trailing)
		})
	}
}

func TestBuildGrid_February2024(t *testing.T) {
	g, err := BuildGrid(2, 2024)
	require.NoError(t, err)
	require.Len(t, g.Cells, 35)
	assert.Len(t, g.Weeks(), 5)

	first := g.Cells[4]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, "2024-02-01", first.Date)
	last := g.Cells[32]
	assert.Equal(t, 29, last.Day)
	assert.Equal(t, "2024-02-29", last.Date)
}

func TestBuildGrid_DayCountEveryMonth(t *testing.T) {
	for _, year := range []int{1900, 2000, 2023, 2024, 2100} {
		for month := 1; month <= 12; month++ {
			g, err := BuildGrid(month, year)
			require.NoError(t, err)

			days := 0
			for _, c := range g.Cells {
				if !c.Blank {
					days++
					assert.Equal(t, days, c.Day)
				}
			}
			want := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
			assert.Equal(t, want, days, "%d-%02d", year, month)
			assert.Equal(t, want, DaysIn(month, year))
		}
	}
}

func TestBuildGrid_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13} {
		g, err := BuildGrid(month, 2024)
		assert.Nil(t, g)

		var ive *domain.InvalidValueError
		require.ErrorAs(t, err, &ive)
		assert.Equal(t, "month", ive.Subject)
		assert.Equal(t, month, ive.Value)
	}
}
