package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"account-transactions/internal/domain"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu       sync.Mutex
	requests []domain.LookupRequest
	txs      []domain.Transaction
	err      error
	panicVal any
	// block, when set, is waited on before returning
	block chan struct{}
	// started is closed once the first call is in progress
	started chan struct{}
}

func (f *fakeFetcher) FetchTransactions(ctx context.Context, req domain.LookupRequest) ([]domain.Transaction, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	if f.started != nil && len(f.requests) == 1 {
		close(f.started)
	}
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.panicVal != nil {
		panic(f.panicVal)
	}
	return f.txs, f.err
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type toastRecorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *toastRecorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *toastRecorder) all() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

type userError struct{ msg string }

func (e *userError) Error() string       { return "lookup failed: " + e.msg }
func (e *userError) UserMessage() string { return e.msg }

func sampleTransaction(id string) domain.Transaction {
	return domain.Transaction{
		ID:               id,
		Date:             civil.Date{Year: 2024, Month: 3, Day: 15},
		Type:             "Debit",
		OriginalAmount:   decimal.RequireFromString("125.50"),
		OriginalCurrency: "USD",
		DisplayAmount:    "€115.46",
	}
}

func newTestComponent(f *fakeFetcher) (*Component, *toastRecorder) {
	rec := &toastRecorder{}
	return NewComponent(f, rec, nil), rec
}

func TestNewComponent_Defaults(t *testing.T) {
	c, _ := newTestComponent(&fakeFetcher{})

	assert.Equal(t, State{CurrencyCode: domain.USD}, c.State())
	assert.Empty(t, c.Transactions())
	assert.True(t, c.LoadDisabled())
}

func TestLoadTransactions_Success(t *testing.T) {
	f := &fakeFetcher{txs: []domain.Transaction{sampleTransaction("TX-1")}}
	c, rec := newTestComponent(f)

	c.SetAccountIdentifier("ABC123")
	require.NoError(t, c.SetCurrencyCode(domain.EUR))

	outcome := c.LoadTransactions(context.Background())

	assert.Equal(t, OutcomeSucceeded, outcome)
	st := c.State()
	assert.True(t, st.ResultsVisible)
	assert.False(t, st.IsLoading)
	assert.False(t, st.HasValidationError)
	assert.Len(t, c.Transactions(), 1)
	assert.Equal(t, []domain.LookupRequest{{AccountNumber: "ABC123", AccountCurrency: domain.EUR}}, f.requests)
	assert.Equal(t, []Toast{{Title: "Success", Message: MsgLoadSucceeded, Severity: SeveritySuccess}}, rec.all())
}

func TestLoadTransactions_SendsIdentifierAsTyped(t *testing.T) {
	f := &fakeFetcher{}
	c, _ := newTestComponent(f)

	c.SetAccountIdentifier("  ABC123 ")
	c.LoadTransactions(context.Background())

	require.Equal(t, 1, f.calls())
	assert.Equal(t, "  ABC123 ", f.requests[0].AccountNumber)
	assert.Equal(t, "  ABC123 ", c.State().AccountIdentifier)
}

func TestLoadTransactions_ValidationFailure(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantMsg    string
	}{
		{name: "too short", identifier: "ab1", wantMsg: MsgAccountFormat},
		{name: "empty", identifier: "", wantMsg: MsgAccountRequired},
		{name: "blank", identifier: "   ", wantMsg: MsgAccountRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{}
			c, rec := newTestComponent(f)
			c.SetAccountIdentifier(tt.identifier)

			outcome := c.LoadTransactions(context.Background())

			assert.Equal(t, OutcomeRejected, outcome)
			st := c.State()
			assert.True(t, st.HasValidationError)
			assert.Equal(t, tt.wantMsg, st.ValidationMessage)
			assert.False(t, st.IsLoading)
			assert.False(t, st.ResultsVisible)
			assert.True(t, st.LoadDisabled())
			assert.Zero(t, f.calls())
			assert.Empty(t, rec.all())
		})
	}
}

func TestLoadTransactions_CollaboratorFailure(t *testing.T) {
	f := &fakeFetcher{err: &userError{msg: "Account not found"}}
	c, rec := newTestComponent(f)
	c.SetAccountIdentifier("VALID99")

	outcome := c.LoadTransactions(context.Background())

	assert.Equal(t, OutcomeFailed, outcome)
	st := c.State()
	assert.False(t, st.ResultsVisible)
	assert.False(t, st.IsLoading)
	assert.Empty(t, c.Transactions())
	assert.Equal(t, []Toast{{Title: "Error", Message: "Account not found", Severity: SeverityError}}, rec.all())
}

func TestLoadTransactions_CollaboratorFailureWithoutMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "plain error", err: errors.New("connection reset")},
		{name: "empty user message", err: &userError{msg: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestComponent(&fakeFetcher{err: tt.err})
			c.SetAccountIdentifier("VALID99")

			c.LoadTransactions(context.Background())

			toasts := rec.all()
			require.Len(t, toasts, 1)
			assert.Equal(t, MsgLoadFailed, toasts[0].Message)
			assert.Equal(t, SeverityError, toasts[0].Severity)
		})
	}
}

func TestLoadTransactions_WrappedUserMessage(t *testing.T) {
	err := errors.Join(errors.New("rpc failed"), &userError{msg: "Account closed"})
	c, rec := newTestComponent(&fakeFetcher{err: err})
	c.SetAccountIdentifier("VALID99")

	c.LoadTransactions(context.Background())

	assert.Equal(t, "Account closed", rec.all()[0].Message)
}

func TestLoadTransactions_FailureClearsPreviousResults(t *testing.T) {
	f := &fakeFetcher{txs: []domain.Transaction{sampleTransaction("TX-1"), sampleTransaction("TX-2")}}
	c, _ := newTestComponent(f)
	c.SetAccountIdentifier("ABC123")
	require.Equal(t, OutcomeSucceeded, c.LoadTransactions(context.Background()))
	require.Len(t, c.Transactions(), 2)

	f.txs, f.err = nil, errors.New("boom")
	require.Equal(t, OutcomeFailed, c.LoadTransactions(context.Background()))

	assert.Empty(t, c.Transactions())
	assert.False(t, c.State().ResultsVisible)
}

func TestLoadTransactions_SuccessReplacesResults(t *testing.T) {
	f := &fakeFetcher{txs: []domain.Transaction{sampleTransaction("TX-1"), sampleTransaction("TX-2")}}
	c, _ := newTestComponent(f)
	c.SetAccountIdentifier("ABC123")
	c.LoadTransactions(context.Background())

	f.txs = []domain.Transaction{sampleTransaction("TX-9")}
	c.LoadTransactions(context.Background())

	txs := c.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "TX-9", txs[0].ID)
}

func TestLoadTransactions_PanickingFetcher(t *testing.T) {
	c, rec := newTestComponent(&fakeFetcher{panicVal: "nil map write"})
	c.SetAccountIdentifier("ABC123")

	outcome := c.LoadTransactions(context.Background())

	assert.Equal(t, OutcomeFailed, outcome)
	assert.False(t, c.State().IsLoading)
	assert.Equal(t, MsgLoadFailed, rec.all()[0].Message)
}

func TestLoadTransactions_SingleFlight(t *testing.T) {
	f := &fakeFetcher{block: make(chan struct{}), started: make(chan struct{})}
	c, rec := newTestComponent(f)
	c.SetAccountIdentifier("ABC123")

	done := make(chan Outcome)
	go func() { done <- c.LoadTransactions(context.Background()) }()
	<-f.started

	assert.True(t, c.State().IsLoading)
	assert.True(t, c.LoadDisabled())
	before := c.State()

	assert.Equal(t, OutcomeSkipped, c.LoadTransactions(context.Background()))
	assert.Equal(t, before, c.State())
	assert.Equal(t, 1, f.calls())

	close(f.block)
	assert.Equal(t, OutcomeSucceeded, <-done)
	assert.False(t, c.State().IsLoading)
	assert.Len(t, rec.all(), 1)
}

func TestEditsHideResultsButKeepThem(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Component)
	}{
		{name: "identifier", edit: func(c *Component) { c.SetAccountIdentifier("ABC1234") }},
		{name: "currency", edit: func(c *Component) { _ = c.SetCurrencyCode(domain.GBP) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeFetcher{txs: []domain.Transaction{sampleTransaction("TX-1")}}
			c, _ := newTestComponent(f)
			c.SetAccountIdentifier("ABC123")
			require.Equal(t, OutcomeSucceeded, c.LoadTransactions(context.Background()))

			tt.edit(c)

			assert.False(t, c.State().ResultsVisible)
			assert.Len(t, c.Transactions(), 1)
		})
	}
}

func TestSetAccountIdentifier_ClearsValidationError(t *testing.T) {
	c, _ := newTestComponent(&fakeFetcher{})
	c.SetAccountIdentifier("ab1")
	c.LoadTransactions(context.Background())
	require.True(t, c.State().HasValidationError)

	c.SetAccountIdentifier("ab12")

	st := c.State()
	assert.False(t, st.HasValidationError)
	assert.Empty(t, st.ValidationMessage)
	assert.Equal(t, "ab12", st.AccountIdentifier)
	assert.False(t, st.LoadDisabled())
}

func TestSetCurrencyCode_Unsupported(t *testing.T) {
	c, _ := newTestComponent(&fakeFetcher{})

	err := c.SetCurrencyCode("JPY")

	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
	assert.Equal(t, domain.USD, c.State().CurrencyCode)
}

func TestLoadDisabled(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{name: "empty identifier", state: State{}, want: true},
		{name: "validation error", state: State{AccountIdentifier: "ab1", HasValidationError: true}, want: true},
		{name: "loading", state: State{AccountIdentifier: "ABC123", IsLoading: true}, want: true},
		{name: "ready", state: State{AccountIdentifier: "ABC123"}, want: false},
		{name: "blank is still enabled", state: State{AccountIdentifier: " "}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.LoadDisabled())
		})
	}
}

func TestDispose_LateCompletionIsNoop(t *testing.T) {
	f := &fakeFetcher{
		txs:     []domain.Transaction{sampleTransaction("TX-1")},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	c, rec := newTestComponent(f)
	c.SetAccountIdentifier("ABC123")

	done := make(chan Outcome)
	go func() { done <- c.LoadTransactions(context.Background()) }()
	<-f.started

	c.Dispose()
	snapshot := c.State()
	close(f.block)
	<-done

	assert.Equal(t, snapshot, c.State())
	assert.Empty(t, c.Transactions())
	assert.Empty(t, rec.all())
}

func TestDispose_SettersAndLoadAreNoops(t *testing.T) {
	f := &fakeFetcher{}
	c, _ := newTestComponent(f)
	c.Dispose()

	c.SetAccountIdentifier("ABC123")
	require.NoError(t, c.SetCurrencyCode(domain.CAD))

	assert.Equal(t, OutcomeSkipped, c.LoadTransactions(context.Background()))
	assert.Equal(t, NewState(), c.State())
	assert.Zero(t, f.calls())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
	assert.Equal(t, "succeeded", OutcomeSucceeded.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
