package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is a single row returned by the transaction service. It is
// displayed as received and never modified locally.
type Transaction struct {
	ID               string
	Date             civil.Date
	Type             string
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	// DisplayAmount is pre-formatted by the service in the account currency
	DisplayAmount string
}

// LookupRequest identifies the account whose transactions are requested.
type LookupRequest struct {
	AccountNumber   string
	AccountCurrency Currency
}
