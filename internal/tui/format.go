package tui

import (
	"strings"
	"time"

	"account-transactions/internal/domain"
	"account-transactions/internal/form"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const dateLayout = "Jan 2, 2006"

// formatCell renders the value of col for tx.
func formatCell(col form.Column, tx domain.Transaction) string {
	switch col.Type {
	case form.ColumnDate:
		return formatDate(tx)
	case form.ColumnCurrency:
		return formatAmount(tx.OriginalAmount, fieldText(col.CurrencyField, tx))
	default:
		return fieldText(col.FieldName, tx)
	}
}

func fieldText(field string, tx domain.Transaction) string {
	switch field {
	case "transactionId":
		return tx.ID
	case "transactionType":
		return tx.Type
	case "originalCurrency":
		return tx.OriginalCurrency
	case "displayAmount":
		return tx.DisplayAmount
	case "originalAmount":
		return tx.OriginalAmount.String()
	case "transactionDate":
		return tx.Date.String()
	default:
		return ""
	}
}

func formatDate(tx domain.Transaction) string {
	if !tx.Date.IsValid() {
		return ""
	}
	return tx.Date.In(time.UTC).Format(dateLayout)
}

// formatAmount prints the amount with its ISO code, grouped, at the
// currency's standard number of decimals.
func formatAmount(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return strings.TrimSpace(code + " " + amount.StringFixed(2))
	}

	scale, _ := currency.Standard.Rounding(unit)
	return unit.String() + " " + groupDecimal(amount.Round(int32(scale)), int32(scale))
}

// groupDecimal renders d with thousands separators and exactly scale
// fractional digits.
func groupDecimal(d decimal.Decimal, scale int32) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs()

	out := sign + humanize.BigComma(abs.BigInt())
	if scale > 0 {
		fixed := abs.StringFixed(scale)
		out += fixed[strings.IndexByte(fixed, '.'):]
	}
	return out
}
