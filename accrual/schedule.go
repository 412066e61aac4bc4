package accrual

import (
	"encoding/json"
	"time"

	"github.com/meenmo/finsec/utils"
)

// Schedule is the tabular form of an accrual: index-aligned period starts,
// period ends and year fractions.
type Schedule struct {
	Start []time.Time
	End   []time.Time
	Frac  []float64
}

// Len is the number of periods.
func (s Schedule) Len() int { return len(s.Start) }

// Row is one accrual period.
type Row struct {
	Start    time.Time
	End      time.Time
	Fraction float64
}

// Rows returns the schedule one period per row.
func (s Schedule) Rows() []Row {
	rows := make([]Row, s.Len())
	for i := range rows {
		rows[i] = Row{Start: s.Start[i], End: s.End[i], Fraction: s.Frac[i]}
	}
	return rows
}

// TotalFraction sums the year fractions.
func (s Schedule) TotalFraction() float64 {
	total := 0.0
	for _, f := range s.Frac {
		total += f
	}
	return total
}

// MarshalJSON writes dates as YYYY-MM-DD.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start    string  `json:"start"`
		End      string  `json:"end"`
		Fraction float64 `json:"fraction"`
	}{r.Start.Format(utils.DateLayout), r.End.Format(utils.DateLayout), r.Fraction})
}

// MarshalJSON writes the schedule as a list of rows.
func (s Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Rows())
}
