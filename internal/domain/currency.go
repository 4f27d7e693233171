package domain

import (
	"errors"
	"fmt"
)

// Currency is an ISO 4217 code the account can be displayed in.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
)

// DefaultCurrency is selected when the form is first shown.
const DefaultCurrency = USD

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// CurrencyOption pairs a supported currency with its selector label.
type CurrencyOption struct {
	Code  Currency
	Label string
}

// CurrencyOptions lists the supported currencies in selector order.
var CurrencyOptions = []CurrencyOption{
	{Code: USD, Label: "USD - US Dollar"},
	{Code: EUR, Label: "EUR - Euro"},
	{Code: GBP, Label: "GBP - British Pound"},
	{Code: AUD, Label: "AUD - Australian Dollar"},
	{Code: CAD, Label: "CAD - Canadian Dollar"},
}

// ParseCurrency returns the supported currency matching code exactly.
func ParseCurrency(code string) (Currency, error) {
	for _, opt := range CurrencyOptions {
		if string(opt.Code) == code {
			return opt.Code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
}

// Label returns the selector label for c, or the bare code if c is unsupported.
func (c Currency) Label() string {
	for _, opt := range CurrencyOptions {
		if opt.Code == c {
			return opt.Label
		}
	}
	return string(c)
}
