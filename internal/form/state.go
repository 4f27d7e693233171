package form

import "account-transactions/internal/domain"

// State holds the two editable fields and the transient UI flags.
//
// HasValidationError implies !ResultsVisible, and IsLoading is set for at
// most one load at a time.
type State struct {
	AccountIdentifier  string
	CurrencyCode       domain.Currency
	HasValidationError bool
	ValidationMessage  string
	IsLoading          bool
	ResultsVisible     bool
}

// NewState returns the state of a freshly mounted form.
func NewState() State {
	return State{CurrencyCode: domain.DefaultCurrency}
}

// LoadDisabled reports whether the load trigger must be unavailable.
func (s State) LoadDisabled() bool {
	return s.AccountIdentifier == "" || s.HasValidationError || s.IsLoading
}
