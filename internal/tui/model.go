package tui

import (
	"context"
	"strings"

	"account-transactions/internal/domain"
	"account-transactions/internal/form"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusAccount focus = iota
	focusCurrency
)

// transactionsLoadedMsg is sent when a LoadTransactions call returns.
type transactionsLoadedMsg struct {
	outcome form.Outcome
}

// Model is the bubbletea front end for a form.Component.
type Model struct {
	ctx       context.Context
	component *form.Component
	toasts    *ToastBoard

	input       textinput.Model
	spinner     spinner.Model
	focus       focus
	currencyIdx int
	// pending is set from the keypress until the load returns, so the
	// spinner keeps ticking before the component reports IsLoading
	pending  bool
	quitting bool
}

// NewModel wires a component to a terminal view. toasts must also be the
// component's notifier (directly or through form.Notifiers).
func NewModel(ctx context.Context, component *form.Component, toasts *ToastBoard) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter account number"
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.SetValue(component.State().AccountIdentifier)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		component: component,
		toasts:    toasts,
		input:     ti,
		spinner:   sp,
	}
	m.currencyIdx = currencyIndex(component.State().CurrencyCode)
	return m
}

func currencyIndex(code domain.Currency) int {
	for i, opt := range domain.CurrencyOptions {
		if opt.Code == code {
			return i
		}
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case transactionsLoadedMsg:
		m.pending = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == focusAccount {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.component.Dispose()
		return m, tea.Quit

	case "tab", "shift+tab":
		return m.toggleFocus(), nil

	case "enter":
		return m.triggerLoad()
	}

	if m.focus == focusCurrency {
		switch msg.String() {
		case "left", "h", "up", "k":
			return m.shiftCurrency(-1), nil
		case "right", "l", "down", "j":
			return m.shiftCurrency(1), nil
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.component.SetAccountIdentifier(after)
	}
	return m, cmd
}

func (m Model) toggleFocus() Model {
	if m.focus == focusAccount {
		m.focus = focusCurrency
		m.input.Blur()
	} else {
		m.focus = focusAccount
		m.input.Focus()
	}
	return m
}

func (m Model) shiftCurrency(delta int) Model {
	n := len(domain.CurrencyOptions)
	m.currencyIdx = (m.currencyIdx + delta + n) % n
	// options come from the supported list, so this cannot fail
	_ = m.component.SetCurrencyCode(domain.CurrencyOptions[m.currencyIdx].Code)
	return m
}

// triggerLoad starts a load unless the trigger is disabled.
func (m Model) triggerLoad() (tea.Model, tea.Cmd) {
	if m.pending || m.component.LoadDisabled() {
		return m, nil
	}
	m.pending = true
	m.toasts.Clear()
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loading() bool {
	return m.pending || m.component.State().IsLoading
}

func (m Model) loadCmd() tea.Cmd {
	ctx, component := m.ctx, m.component
	return func() tea.Msg {
		return transactionsLoadedMsg{outcome: component.LoadTransactions(ctx)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.component.State()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Account Transactions"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Account Number", focusAccount))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if st.HasValidationError {
		b.WriteString(errorStyle.Render(st.ValidationMessage))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Account Currency", focusCurrency))
	b.WriteString("\n")
	b.WriteString("< " + st.CurrencyCode.Label() + " >")
	b.WriteString("\n\n")

	if m.pending || st.LoadDisabled() {
		b.WriteString(disabledStyle.Render("Load Transactions"))
	} else {
		b.WriteString(buttonStyle.Render("Load Transactions"))
	}
	b.WriteString("\n\n")

	if m.pending || st.IsLoading {
		b.WriteString(m.spinner.View() + " Loading transactions...")
		b.WriteString("\n\n")
	}

	if t, ok := m.toasts.Latest(); ok {
		b.WriteString(renderToast(t))
		b.WriteString("\n\n")
	}

	if st.ResultsVisible {
		txs := m.component.Transactions()
		if len(txs) == 0 {
			b.WriteString(blurredStyle.Render("No transactions found."))
		} else {
			b.WriteString(RenderTable(txs))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("tab: switch field • ←/→: change currency • enter: load • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) fieldLabel(label string, f focus) string {
	if m.focus == f {
		return labelStyle.Inherit(focusedStyle).Render(label)
	}
	return labelStyle.Render(label)
}
