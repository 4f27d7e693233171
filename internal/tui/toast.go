package tui

import (
	"sync"

	"account-transactions/internal/form"
)

// ToastBoard keeps the most recent toast for the view to show.
type ToastBoard struct {
	mu     sync.Mutex
	latest *form.Toast
}

func (b *ToastBoard) Notify(t form.Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = &t
}

// Latest returns the last toast, if any.
func (b *ToastBoard) Latest() (form.Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest == nil {
		return form.Toast{}, false
	}
	return *b.latest, true
}

// Clear drops the current toast.
func (b *ToastBoard) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.latest = nil
}

func renderToast(t form.Toast) string {
	style := successStyle
	if t.Severity == form.SeverityError {
		style = errorStyle
	}
	return style.Render(t.Title + ": " + t.Message)
}
