package domain

// Geometry is the physical seat grid of an aircraft.
type Geometry struct {
	Rows       int
	SeatsInRow int
}

func (g Geometry) Capacity() int {
	return g.Rows * g.SeatsInRow
}

// ValidateSeat checks that row and seat fall inside g. Row is checked first,
// so when both are out of range the row error is the one reported.
func ValidateSeat(row, seat int, g Geometry) error {
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"row", row, g.Rows},
		{"seat", seat, g.SeatsInRow},
	}

	for _, c := range checks {
		if c.value < 1 || c.value > c.max {
			return &BoundsError{Field: c.field, Value: c.value, Min: 1, Max: c.max}
		}
	}
	return nil
}
