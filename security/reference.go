// Package security holds the narrow security/currency reference the fixed-income
// core consumes. Only identity comparison is needed.
package security

import "strings"

// Reference identifies a security or currency by ticker and an optional
// application-level id (GSID).
type Reference struct {
	Ticker string `json:"ticker" yaml:"ticker"`
	GSID   string `json:"gsid,omitempty" yaml:"gsid,omitempty"`
}

// Currency returns a fiat currency reference with an upper-cased ticker.
func Currency(ticker string) Reference {
	return Reference{Ticker: strings.ToUpper(strings.TrimSpace(ticker))}
}

// Differs reports whether a and b are known to be different. Identifiers that
// are empty on either side are not compared.
func Differs(a, b Reference) bool {
	if a.Ticker != "" && b.Ticker != "" && a.Ticker != b.Ticker {
		return true
	}
	if a.GSID != "" && b.GSID != "" && a.GSID != b.GSID {
		return true
	}
	return false
}

func (r Reference) String() string {
	if r.GSID == "" {
		return r.Ticker
	}
	return r.Ticker + "#" + r.GSID
}
