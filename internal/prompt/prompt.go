package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"account-transactions/internal/domain"
	"account-transactions/internal/form"
	"account-transactions/internal/tui"

	"github.com/charmbracelet/huh"
)

// Run asks for an account and currency, loads the transactions and prints
// them, repeating until the user declines or aborts. Toasts for each load go
// to the component's notifier; use PrintNotifier to show them on out.
func Run(ctx context.Context, component *form.Component, out io.Writer) error {
	defer component.Dispose()

	for {
		st := component.State()
		account := st.AccountIdentifier
		currency := string(st.CurrencyCode)

		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Account Number").
					Placeholder("Enter account number").
					Value(&account).
					Validate(form.ValidateAccountIdentifier),
				huh.NewSelect[string]().
					Title("Account Currency").
					Options(currencyOptions()...).
					Value(&currency),
			),
		).RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read account details: %w", err)
		}

		component.SetAccountIdentifier(account)
		if err := component.SetCurrencyCode(domain.Currency(currency)); err != nil {
			return err
		}

		printResult(out, component, component.LoadTransactions(ctx))

		again := false
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Load another account?").
					Affirmative("Yes").
					Negative("No").
					Value(&again),
			),
		).RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !again) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
	}
}

func currencyOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.CurrencyOptions))
	for _, opt := range domain.CurrencyOptions {
		opts = append(opts, huh.NewOption(opt.Label, string(opt.Code)))
	}
	return opts
}

func printResult(out io.Writer, component *form.Component, outcome form.Outcome) {
	st := component.State()
	switch outcome {
	case form.OutcomeRejected:
		fmt.Fprintln(out, st.ValidationMessage)
	case form.OutcomeSucceeded:
		if !st.ResultsVisible {
			return
		}
		txs := component.Transactions()
		if len(txs) == 0 {
			fmt.Fprintln(out, "No transactions found.")
			return
		}
		fmt.Fprintln(out, tui.RenderTable(txs))
	}
}

// PrintNotifier writes each toast to out as a single line.
func PrintNotifier(out io.Writer) form.Notifier {
	return form.NotifierFunc(func(t form.Toast) {
		fmt.Fprintf(out, "%s: %s\n", t.Title, t.Message)
	})
}
