package status

import (
	"fmt"
	"sync"
	"time"
)

// Severity classifies a status message.
type Severity int

const (
	Info Severity = iota
	Error
)

// Status is a single short-lived status bar message.
type Status struct {
	Text      string
	Severity  Severity
	CreatedAt time.Time
}

// Notifier holds the process-wide current status message. The latest
// Post wins unconditionally; the rendering layer decides when a message
// has aged out and calls ClearOlderThan. A Notifier is safe for
// concurrent use (written by refresh completions, read every frame).
type Notifier struct {
	mu      sync.Mutex
	current *Status

	now func() time.Time
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{now: time.Now}
}

// Post overwrites the current status with a fresh timestamp.
func (n *Notifier) Post(text string, severity Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = &Status{
		Text:      text,
		Severity:  severity,
		CreatedAt: n.now(),
	}
}

// Infof posts a formatted Info status.
func (n *Notifier) Infof(format string, args ...any) {
	n.Post(fmt.Sprintf(format, args...), Info)
}

// Errorf posts a formatted Error status.
func (n *Notifier) Errorf(format string, args ...any) {
	n.Post(fmt.Sprintf(format, args...), Error)
}

// Current returns the current status and its age. ok is false when no
// status is set.
func (n *Notifier) Current() (st Status, age time.Duration, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Status{}, 0, false
	}
	return *n.current, n.now().Sub(n.current.CreatedAt), true
}

// Clear removes the current status.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = nil
}

// ClearOlderThan removes the current status if it is older than maxAge.
func (n *Notifier) ClearOlderThan(maxAge time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.now().Sub(n.current.CreatedAt) >= maxAge {
		n.current = nil
	}
}
