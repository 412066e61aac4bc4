package definition

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/bond"
	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/pricing"
	"github.com/meenmo/finsec/rate"
	"github.com/meenmo/finsec/security"
	"github.com/meenmo/finsec/swap"
	"github.com/meenmo/finsec/utils"
)

// ErrUnknownPreset is returned for an OIS preset with no conventions.
var ErrUnknownPreset = errors.New("unknown OIS preset")

var presets = map[string]swap.OISPreset{
	"SOFR": swap.SOFROIS,
	"ESTR": swap.ESTROIS,
}

// Named pairs a built value with its book name.
type Named[T any] struct {
	Name  string
	Value T
}

// Portfolio is a built book.
type Portfolio struct {
	ValuationDate time.Time
	Funding       pricing.FundingSpec
	Legs          []Named[leg.Leg]
	Bonds         []Named[bond.Bond]
	Swaps         []Named[swap.Swap]
}

// Build turns b into core values. The market is built separately by Market
// so scenarios can rebuild it without touching the instruments.
func (b *Book) Build() (*Portfolio, error) {
	asOf, err := utils.ParseDate(b.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("definition.Build: valuation date: %w", err)
	}
	p := &Portfolio{
		ValuationDate: asOf,
		Funding:       pricing.FundingSpec{Index: b.Funding.Index, ByCurrency: upperKeys(b.Funding.ByCurrency)},
	}

	for i, ld := range b.Legs {
		name := legName(ld, i)
		l, err := ld.build()
		if err != nil {
			return nil, fmt.Errorf("definition.Build: leg %s: %w", name, err)
		}
		p.Legs = append(p.Legs, Named[leg.Leg]{Name: name, Value: l})
	}
	for _, bd := range b.Bonds {
		bnd, err := bd.build()
		if err != nil {
			return nil, fmt.Errorf("definition.Build: bond %s: %w", bd.Name, err)
		}
		p.Bonds = append(p.Bonds, Named[bond.Bond]{Name: bd.Name, Value: bnd})
	}
	for _, sd := range b.Swaps {
		var legs [2]leg.Leg
		for i := range sd.Legs {
			if legs[i], err = sd.Legs[i].build(); err != nil {
				return nil, fmt.Errorf("definition.Build: swap %s leg %d: %w", sd.Name, i, err)
			}
		}
		p.Swaps = append(p.Swaps, Named[swap.Swap]{Name: sd.Name, Value: swap.New(legs[0], legs[1])})
	}
	for _, od := range b.OIS {
		s, err := od.build()
		if err != nil {
			return nil, fmt.Errorf("definition.Build: ois %s: %w", od.Name, err)
		}
		p.Swaps = append(p.Swaps, Named[swap.Swap]{Name: od.Name, Value: s})
	}
	return p, nil
}

// Jobs returns one valuation job per instrument, legs first.
func (p *Portfolio) Jobs(engine pricing.EngineOptions) []pricing.Job {
	var jobs []pricing.Job
	for _, l := range p.Legs {
		jobs = append(jobs, pricing.Job{Name: l.Name, Build: l.Value.RiskBuilder(p.Funding, engine).Named(l.Name)})
	}
	for _, bnd := range p.Bonds {
		jobs = append(jobs, pricing.Job{Name: bnd.Name, Build: bnd.Value.RiskBuilder(p.Funding, engine).Named(bnd.Name)})
	}
	for _, s := range p.Swaps {
		jobs = append(jobs, pricing.Job{Name: s.Name, Build: s.Value.RiskBuilder(p.Funding, engine).Named(s.Name)})
	}
	return jobs
}

// Market builds the lookup: curves in book order, then FX quotes.
func (b *Book) Market() (*market.Lookup, error) {
	asOf, err := utils.ParseDate(b.ValuationDate)
	if err != nil {
		return nil, fmt.Errorf("definition.Market: valuation date: %w", err)
	}
	lookup := market.NewLookup(asOf)

	forwarding := make(map[string]curve.DiscountCurve, len(b.Curves))
	for _, cd := range b.Curves {
		name := strings.ToUpper(cd.Index)
		c, err := cd.curve(asOf, forwarding)
		if err != nil {
			return nil, fmt.Errorf("definition.Market: curve %s: %w", name, err)
		}
		forwarding[name] = c
	}

	for _, cd := range b.Curves {
		name := strings.ToUpper(cd.Index)
		var disc curve.DiscountCurve
		if cd.Discount != "" {
			d, ok := forwarding[strings.ToUpper(cd.Discount)]
			if !ok {
				return nil, fmt.Errorf("definition.Market: curve %s discounted on %s: %w", name, cd.Discount, market.ErrUnknownIndex)
			}
			disc = d
		}
		var feed market.FixingFeed
		if len(cd.Fixings) > 0 {
			feed = market.NewMapFixingFeed(cd.Fixings)
		}
		if err := lookup.AddIndex(market.NewRateIndex(name, forwarding[name], disc, feed)); err != nil {
			return nil, fmt.Errorf("definition.Market: %w", err)
		}
	}

	for _, fx := range b.FX {
		lookup.SetFX(security.Currency(fx.Base), security.Currency(fx.Quote), fx.Rate)
	}
	return lookup, nil
}

func (cd CurveDef) curve(asOf time.Time, built map[string]curve.DiscountCurve) (curve.DiscountCurve, error) {
	dc := curve.DefaultDayCount
	if cd.DayCount != "" {
		var err error
		if dc, err = daycount.Parse(cd.DayCount); err != nil {
			return nil, err
		}
	}

	switch {
	case cd.Rate != nil:
		return curve.NewFlat(asOf, *cd.Rate, dc), nil
	case len(cd.Nodes) > 0:
		dfs := make(map[time.Time]float64, len(cd.Nodes))
		for k, df := range cd.Nodes {
			d, err := utils.ParseDate(k)
			if err != nil {
				return nil, err
			}
			dfs[d] = df
		}
		nodes, err := curve.NewNodes(asOf, dfs, dc)
		if err != nil {
			return nil, err
		}
		return nodes, nil
	default:
		base, ok := built[strings.ToUpper(cd.Base)]
		if !ok {
			return nil, fmt.Errorf("base %s must come first: %w", cd.Base, market.ErrUnknownIndex)
		}
		spread, err := curve.NewSpread(base, cd.SpreadBP, dc)
		if err != nil {
			return nil, err
		}
		return spread, nil
	}
}

func (sd ScheduleDef) build() (accrual.Info, error) {
	start, err := utils.ParseDate(sd.Start)
	if err != nil {
		return accrual.Info{}, err
	}
	end, err := accrual.ParseEnd(sd.End)
	if err != nil {
		return accrual.Info{}, err
	}
	dc, err := daycount.Parse(sd.DayCount)
	if err != nil {
		return accrual.Info{}, err
	}
	params := accrual.Params{
		Start:      start,
		End:        end,
		DayCount:   dc,
		Frequency:  sd.Frequency,
		EndOfMonth: sd.EndOfMonth,
	}
	if sd.Period != "" {
		p, err := period.Parse(sd.Period)
		if err != nil {
			return accrual.Info{}, err
		}
		params.Period = &p
	}
	if sd.AccrualCalendar != "" {
		if params.AccrualCalendar, err = calendar.ParseID(sd.AccrualCalendar); err != nil {
			return accrual.Info{}, err
		}
	}
	if sd.PaymentCalendar != "" {
		if params.PaymentCalendar, err = calendar.ParseID(sd.PaymentCalendar); err != nil {
			return accrual.Info{}, err
		}
	}
	if sd.Convention != "" {
		if params.Convention, err = calendar.ParseConvention(sd.Convention); err != nil {
			return accrual.Info{}, err
		}
	}
	if sd.Stub == "back" {
		params.Stub = accrual.StubBack
	}
	return accrual.New(params)
}

func (ld LegDef) build() (leg.Leg, error) {
	acc, err := ld.Schedule.build()
	if err != nil {
		return leg.Leg{}, err
	}
	coupons := make([]rate.Expression, len(ld.Coupons))
	for i, c := range ld.Coupons {
		coupons[i] = c.Expression
	}
	l := leg.Leg{
		Accrual:   acc,
		Notionals: ld.Notionals,
		Coupons:   coupons,
		Currency:  currencyRef(ld.Currency),
	}
	if ld.PayDelay != "" {
		d, err := period.Parse(ld.PayDelay)
		if err != nil {
			return leg.Leg{}, err
		}
		l.PayDelay = &d
	}
	if err := l.Validate(); err != nil {
		return leg.Leg{}, err
	}
	return l, nil
}

func (bd BondDef) build() (bond.Bond, error) {
	acc, err := bd.Schedule.build()
	if err != nil {
		return bond.Bond{}, err
	}
	if bd.Coupon.Expression == nil {
		return bond.Bond{}, fmt.Errorf("missing coupon: %w", rate.ErrMalformedExpression)
	}
	l := leg.Leg{
		Accrual:   acc,
		Notionals: []decimal.Decimal{bd.Notional},
		Coupons:   []rate.Expression{bd.Coupon.Expression},
		Currency:  currencyRef(bd.Currency),
	}
	b := bond.Bond{
		Notional:    bd.Notional,
		Leg:         l,
		SettleDays:  bd.SettleDays,
		CreditIndex: strings.ToUpper(bd.CreditIndex),
		Redemption:  bd.Redemption,
	}
	if bd.Face != nil {
		b.Face = *bd.Face
	}
	if bd.Settle != "" {
		if b.Settle, err = utils.ParseDate(bd.Settle); err != nil {
			return bond.Bond{}, err
		}
	}
	if bd.Security != "" {
		b.Security = &security.Reference{Ticker: bd.Security}
	}
	if err := b.Validate(); err != nil {
		return bond.Bond{}, err
	}
	return b, nil
}

func (od OISDef) build() (swap.Swap, error) {
	preset, ok := presets[strings.ToUpper(od.Preset)]
	if !ok {
		return swap.Swap{}, fmt.Errorf("%q: %w", od.Preset, ErrUnknownPreset)
	}
	trade, err := utils.ParseDate(od.Trade)
	if err != nil {
		return swap.Swap{}, err
	}
	tenor, err := period.Parse(od.Tenor)
	if err != nil {
		return swap.Swap{}, err
	}
	params, err := preset.Params(trade, tenor, od.Rate, od.Notional)
	if err != nil {
		return swap.Swap{}, err
	}
	params.Averaged = od.Averaged
	return swap.MakeOIS(params)
}

func currencyRef(ticker string) *security.Reference {
	if ticker == "" {
		return nil
	}
	c := security.Currency(ticker)
	return &c
}

func upperKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	return out
}
