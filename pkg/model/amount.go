// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

var (
	// ErrDifferentCurrencies is returned when an operation on an Amount instance is attempted with another Amount of a different currency (symbol).
	ErrDifferentCurrencies = errors.New("different currencies")

	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrAmountOutOfRange is returned when the minor units of a value don't fit in an int64.
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// Amount is a quantity of a currency held in its minor units (cents for USD,
// whole yen for JPY).
type Amount struct {
	minor int64
	unit  currency.Unit
}

// NewAmount converts a major-unit value such as 12.45 into an Amount of the
// ISO 4217 currency symbol. The value is rounded to the currency's scale.
func NewAmount(symbol string, value float64) (*Amount, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		return nil, fmt.Errorf("currency %q: %v", symbol, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("invalid amount %v", value)
	}
	minor := math.Round(value * math.Pow10(scale(unit)))
	if minor >= math.MaxInt64 || minor < math.MinInt64 {
		return nil, ErrAmountOutOfRange
	}
	return &Amount{
		minor: int64(minor),
		unit:  unit,
	}, nil
}

// NewPositiveAmount is NewAmount which also rejects zero and negative values.
func NewPositiveAmount(symbol string, value float64) (*Amount, error) {
	amt, err := NewAmount(symbol, value)
	if err != nil {
		return nil, err
	}
	if amt.minor <= 0 {
		return nil, ErrNonPositiveAmount
	}
	return amt, nil
}

func scale(unit currency.Unit) int {
	s, _ := currency.Standard.Rounding(unit)
	return s
}

// Minor returns the amount in the currency's minor units.
// Example: "USD 1.11" returns 111
func (a *Amount) Minor() int64 {
	if a == nil {
		return 0
	}
	return a.minor
}

func (a *Amount) Currency() string {
	if a == nil {
		return ""
	}
	return a.unit.String()
}

func (a Amount) Equal(other Amount) bool {
	return a.unit == other.unit && a.minor == other.minor
}

// Plus returns an Amount of adding both Amount instances together.
// Currency symbols must match for Plus to return without errors.
func (a Amount) Plus(other Amount) (Amount, error) {
	if a.unit != other.unit {
		return a, ErrDifferentCurrencies
	}
	return Amount{minor: a.minor + other.minor, unit: a.unit}, nil
}

// String returns an amount formatted with the currency.
// Examples:
//   USD 12.53
//   JPY 1200
func (a *Amount) String() string {
	if a == nil {
		return "USD 0.00"
	}
	s := scale(a.unit)
	if s == 0 {
		return fmt.Sprintf("%s %d", a.unit, a.minor)
	}
	return fmt.Sprintf("%s %s", a.unit, strconv.FormatFloat(float64(a.minor)/math.Pow10(s), 'f', s, 64))
}

// ParseAmount reads a currency symbol and a major-unit quantity.
// Examples:
//   USD 12.53
func ParseAmount(in string) (*Amount, error) {
	parts := strings.Fields(in)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid Amount format: %q", in)
	}
	value, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid Amount format: %q", in)
	}
	return NewAmount(parts[0], value)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	amt, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = *amt
	return nil
}
