package form

import "github.com/charmbracelet/log"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

const (
	MsgLoadSucceeded = "Transactions loaded successfully"
	MsgLoadFailed    = "Failed to load transactions"
)

// Toast is a transient notification emitted after every load attempt.
type Toast struct {
	Title    string
	Message  string
	Severity Severity
}

func successToast() Toast {
	return Toast{Title: "Success", Message: MsgLoadSucceeded, Severity: SeveritySuccess}
}

func errorToast(message string) Toast {
	return Toast{Title: "Error", Message: message, Severity: SeverityError}
}

// Notifier receives toasts from the component.
type Notifier interface {
	Notify(Toast)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// Notifiers fans a toast out to every notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(t Toast) {
	for _, n := range ns {
		n.Notify(t)
	}
}

// LogNotifier writes toasts to logger.
func LogNotifier(logger *log.Logger) Notifier {
	return NotifierFunc(func(t Toast) {
		if t.Severity == SeverityError {
			logger.Error(t.Title, "message", t.Message)
			return
		}
		logger.Info(t.Title, "message", t.Message)
	})
}
