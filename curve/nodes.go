package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/utils"
)

// Nodes interpolates discount factors log-linearly between pillar dates and
// extrapolates flat-forward from the nearest pair outside them.
type Nodes struct {
	reference time.Time
	dayCount  daycount.Convention
	pillars   []time.Time
	dfs       map[time.Time]float64
}

// NewNodes builds a curve from discount factors keyed by date. The reference
// date is pinned at DF 1 unless dfs already carries it.
func NewNodes(reference time.Time, dfs map[time.Time]float64, dc daycount.Convention) (*Nodes, error) {
	if len(dfs) == 0 {
		return nil, ErrNoNodes
	}
	reference = utils.Truncate(reference)
	n := &Nodes{
		reference: reference,
		dayCount:  timeAxis(dc),
		dfs:       make(map[time.Time]float64, len(dfs)+1),
	}
	for t, df := range dfs {
		if df <= 0 || math.IsNaN(df) || math.IsInf(df, 0) {
			return nil, fmt.Errorf("curve.NewNodes: %s: %v: %w", t.Format(utils.DateLayout), df, ErrInvalidDiscountFactor)
		}
		n.dfs[utils.Truncate(t)] = df
	}
	if _, ok := n.dfs[reference]; !ok {
		n.dfs[reference] = 1.0
	}
	for t := range n.dfs {
		n.pillars = append(n.pillars, t)
	}
	utils.SortDates(n.pillars)
	return n, nil
}

func (n *Nodes) ReferenceDate() time.Time { return n.reference }

// Pillars returns a copy of the sorted pillar dates.
func (n *Nodes) Pillars() []time.Time {
	return append([]time.Time(nil), n.pillars...)
}

func (n *Nodes) DF(t time.Time) float64 {
	t = utils.Truncate(t)
	if df, ok := n.dfs[t]; ok {
		return df
	}
	if len(n.pillars) < 2 {
		return n.dfs[n.pillars[0]]
	}

	d1, d2 := utils.AdjacentDates(t, n.pillars)
	df1, df2 := n.dfs[d1], n.dfs[d2]

	t1 := n.dayCount.Fraction(n.reference, d1)
	t2 := n.dayCount.Fraction(n.reference, d2)
	tTarget := n.dayCount.Fraction(n.reference, t)
	if t2 == t1 {
		return df1
	}
	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return utils.RoundTo(df1*math.Exp(-forwardRate*(tTarget-t1)), 12)
}

func (n *Nodes) ZeroRateAt(t time.Time) float64 {
	return zeroFromDF(n.DF(t), n.dayCount.Fraction(n.reference, t))
}
