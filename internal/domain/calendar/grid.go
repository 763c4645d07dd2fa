package calendar

import "time"

const (
	WeeksPerGrid = 6
	DaysPerWeek  = 7
	CellsPerGrid = WeeksPerGrid * DaysPerWeek
)

type Cell struct {
	Date           Date `json:"date"`
	InCurrentMonth bool `json:"inCurrentMonth"`
}

type Week [DaysPerWeek]Cell

// Grid is always 6 Monday-first weeks, whatever the length of the month.
type Grid [WeeksPerGrid]Week

// BuildGrid lays out the month containing view: the tail of the previous month
// up to the first Monday, every day of the month, then days of the next month
// until 42 consecutive days are filled.
func BuildGrid(view Date) Grid {
	first := view.FirstOfMonth()
	start := first.AddDays(-mondayIndex(first.Weekday()))

	var g Grid
	for i := range CellsPerGrid {
		d := start.AddDays(i)
		g[i/DaysPerWeek][i%DaysPerWeek] = Cell{
			Date:           d,
			InCurrentMonth: d.SameMonth(view),
		}
	}
	return g
}

func (g Grid) Cells() []Cell {
	cells := make([]Cell, 0, CellsPerGrid)
	for _, w := range g {
		cells = append(cells, w[:]...)
	}
	return cells
}

// Contains reports whether d is rendered anywhere in the grid.
func (g Grid) Contains(d Date) bool {
	first := g[0][0].Date
	last := g[WeeksPerGrid-1][DaysPerWeek-1].Date
	return !d.Before(first) && !d.After(last)
}

// mondayIndex remaps time.Weekday (Sunday = 0) to Monday = 0 ... Sunday = 6.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
