package form

type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnDate     ColumnType = "date"
	ColumnCurrency ColumnType = "currency"
)

// Column describes one column of the results table.
type Column struct {
	Label     string
	FieldName string
	Type      ColumnType
	// CurrencyField names the row field holding the currency code for
	// ColumnCurrency columns.
	CurrencyField string
}

// Columns is the results table layout, in display order.
var Columns = []Column{
	{Label: "Transaction ID", FieldName: "transactionId", Type: ColumnText},
	{Label: "Date", FieldName: "transactionDate", Type: ColumnDate},
	{Label: "Type", FieldName: "transactionType", Type: ColumnText},
	{Label: "Original Amount", FieldName: "originalAmount", Type: ColumnCurrency, CurrencyField: "originalCurrency"},
	{Label: "Amount (Account Currency)", FieldName: "displayAmount", Type: ColumnText},
}
