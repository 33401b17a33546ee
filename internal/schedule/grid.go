package schedule

// GridColumns is the fixed width of the day grid.
const GridColumns = 10

const minGridRows = 2

// Layout sizes the completion grid for a day carrying totalUnits grid
// units. Columns are fixed; rows grow with the workload but never drop
// below two, so an empty day still renders a visible grid.
func Layout(totalUnits int) (columns, rows int) {
	required := 1
	if totalUnits > 0 {
		required = (totalUnits + GridColumns - 1) / GridColumns
	}
	rows = required
	if rows < minGridRows {
		rows = minGridRows
	}
	return GridColumns, rows
}
