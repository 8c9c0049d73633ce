// Package currency converts amounts between currencies using a table of
// rates against one base currency. It makes no claim about market accuracy.
package currency

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnknownCurrency is returned when a currency has no rate in the table.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates holds how many units of each currency one unit of Base buys.
// Base itself is implicitly 1. Keys are upper-case ISO codes; Parse
// normalizes them.
type Rates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Identity is a table that only converts a currency to itself.
var Identity = Rates{}

// rate returns units of code per unit of base.
func (r Rates) rate(code string) (float64, bool) {
	if code == normalize(r.Base) {
		return 1, true
	}
	v, ok := r.Rates[code]
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// Convert converts amount from one currency to another through r's base.
// Codes are compared case-insensitively, and converting a currency to
// itself never needs a rate. Blank codes are an error.
func Convert(amount float64, from, to string, r Rates) (float64, error) {
	from, to = normalize(from), normalize(to)
	if from == "" || to == "" {
		return 0, fmt.Errorf("currency.Convert: %w: blank code", ErrUnknownCurrency)
	}
	if from == to {
		return amount, nil
	}
	fromRate, ok := r.rate(from)
	if !ok {
		return 0, fmt.Errorf("currency.Convert: %w: %s", ErrUnknownCurrency, from)
	}
	toRate, ok := r.rate(to)
	if !ok {
		return 0, fmt.Errorf("currency.Convert: %w: %s", ErrUnknownCurrency, to)
	}
	return amount / fromRate * toRate, nil
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Parse decodes a JSON rate table such as
//
//	{"base": "USD", "rates": {"JPY": 151.2, "EUR": 0.92}}
func Parse(r io.Reader) (Rates, error) {
	var out Rates
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return Rates{}, fmt.Errorf("currency.Parse: %w", err)
	}
	if normalize(out.Base) == "" {
		return Rates{}, errors.New("currency.Parse: base is required")
	}
	out.Base = normalize(out.Base)
	rates := make(map[string]float64, len(out.Rates))
	for k, v := range out.Rates {
		if v <= 0 {
			return Rates{}, fmt.Errorf("currency.Parse: rate for %s must be positive", k)
		}
		code := normalize(k)
		if _, dup := rates[code]; dup {
			return Rates{}, fmt.Errorf("currency.Parse: duplicate rate for %s", code)
		}
		rates[code] = v
	}
	out.Rates = rates
	return out, nil
}

// Load reads a JSON rate table from path.
func Load(path string) (Rates, error) {
	f, err := os.Open(path)
	if err != nil {
		return Rates{}, fmt.Errorf("currency.Load: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
