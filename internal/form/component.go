package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"account-transactions/internal/domain"

	"github.com/charmbracelet/log"
)

// Fetcher looks up the transactions of an account.
type Fetcher interface {
	FetchTransactions(ctx context.Context, req domain.LookupRequest) ([]domain.Transaction, error)
}

// Outcome is how a single LoadTransactions call ended.
type Outcome int

const (
	// OutcomeSkipped means a load was already in flight and nothing happened.
	OutcomeSkipped Outcome = iota
	// OutcomeRejected means validation failed and no lookup was made.
	OutcomeRejected
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRejected:
		return "rejected"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// userMessager is implemented by lookup errors that carry a message meant for
// the user.
type userMessager interface {
	UserMessage() string
}

// Component owns the form state and the last fetched result set.
type Component struct {
	mu           sync.Mutex
	state        State
	transactions []domain.Transaction
	disposed     bool

	fetcher  Fetcher
	notifier Notifier
	log      *log.Logger
}

func NewComponent(fetcher Fetcher, notifier Notifier, logger *log.Logger) *Component {
	if notifier == nil {
		notifier = Notifiers{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Component{
		state:    NewState(),
		fetcher:  fetcher,
		notifier: notifier,
		log:      logger,
	}
}

// SetAccountIdentifier stores raw as typed, clears any validation error and
// hides the results table until the next successful load.
func (c *Component) SetAccountIdentifier(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}

	c.state.AccountIdentifier = raw
	c.state.HasValidationError = false
	c.state.ValidationMessage = ""
	c.state.ResultsVisible = false
}

// SetCurrencyCode selects the account currency and hides the results table,
// since display amounts depend on it.
func (c *Component) SetCurrencyCode(code domain.Currency) error {
	if _, err := domain.ParseCurrency(string(code)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return nil
	}

	c.state.CurrencyCode = code
	c.state.ResultsVisible = false
	return nil
}

func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transactions returns a copy of the last successfully loaded result set. It
// survives field edits and is only replaced by the next load.
func (c *Component) Transactions() []domain.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

func (c *Component) LoadDisabled() bool {
	return c.State().LoadDisabled()
}

// Dispose detaches the component from its host. A lookup still in flight
// completes without touching the state or emitting a toast.
func (c *Component) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
}

// LoadTransactions validates the identifier and, if it passes, fetches the
// account's transactions. Lookup errors are turned into an error toast and
// never returned.
func (c *Component) LoadTransactions(ctx context.Context) Outcome {
	req, outcome, ok := c.begin()
	if !ok {
		return outcome
	}
	defer c.finishLoading()

	c.log.Debug("loading transactions", "account", req.AccountNumber, "currency", req.AccountCurrency)
	txs, err := c.fetch(ctx, req)
	return c.complete(txs, err)
}

func (c *Component) begin() (domain.LookupRequest, Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed || c.state.IsLoading {
		return domain.LookupRequest{}, OutcomeSkipped, false
	}

	if err := ValidateAccountIdentifier(c.state.AccountIdentifier); err != nil {
		c.state.HasValidationError = true
		c.state.ValidationMessage = err.Error()
		c.state.ResultsVisible = false
		return domain.LookupRequest{}, OutcomeRejected, false
	}
	c.state.HasValidationError = false
	c.state.ValidationMessage = ""

	c.state.IsLoading = true
	c.state.ResultsVisible = false
	return domain.LookupRequest{
		AccountNumber:   c.state.AccountIdentifier,
		AccountCurrency: c.state.CurrencyCode,
	}, OutcomeSucceeded, true
}

// fetch calls the fetcher and converts a panic into an error.
func (c *Component) fetch(ctx context.Context, req domain.LookupRequest) (txs []domain.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			txs, err = nil, fmt.Errorf("transaction lookup panicked: %v", r)
		}
	}()
	return c.fetcher.FetchTransactions(ctx, req)
}

func (c *Component) complete(txs []domain.Transaction, err error) Outcome {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		c.log.Debug("discarding lookup result for disposed form")
		if err != nil {
			return OutcomeFailed
		}
		return OutcomeSucceeded
	}

	if err != nil {
		c.transactions = nil
		c.state.ResultsVisible = false
		c.mu.Unlock()

		c.log.Warn("failed to load transactions", "err", err)
		c.notifier.Notify(errorToast(failureMessage(err)))
		return OutcomeFailed
	}

	c.transactions = txs
	c.state.ResultsVisible = true
	c.mu.Unlock()

	c.log.Info("transactions loaded", "count", len(txs))
	c.notifier.Notify(successToast())
	return OutcomeSucceeded
}

func (c *Component) finishLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.state.IsLoading = false
}

func failureMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return MsgLoadFailed
}
