package tui

import (
	"account-transactions/internal/domain"
	"account-transactions/internal/form"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable lays txs out under form.Columns.
func RenderTable(txs []domain.Transaction) string {
	headers := make([]string, 0, len(form.Columns))
	for _, col := range form.Columns {
		headers = append(headers, col.Label)
	}

	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		row := make([]string, 0, len(form.Columns))
		for _, col := range form.Columns {
			row = append(row, formatCell(col, tx))
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if form.Columns[col].Type == form.ColumnCurrency {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
