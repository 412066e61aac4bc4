package market

import (
	"math"
	"sync/atomic"
)

// SimpleQuote is a settable market value safe for concurrent use.
type SimpleQuote struct {
	bits atomic.Uint64
}

func NewSimpleQuote(v float64) *SimpleQuote {
	q := &SimpleQuote{}
	q.SetValue(v)
	return q
}

func (q *SimpleQuote) Value() float64 {
	return math.Float64frombits(q.bits.Load())
}

func (q *SimpleQuote) SetValue(v float64) {
	q.bits.Store(math.Float64bits(v))
}
