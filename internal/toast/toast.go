// Package toast manages transient, auto-dismissing notifications.
//
// A Manager is created once per running application and shared by every view
// that needs to report something to the user. Each toast expires on its own
// timer; Remove dismisses it early. Both paths are safe to race: whichever
// runs second is a no-op.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is how long a toast stays visible unless told otherwise.
const DefaultDuration = 5 * time.Second

// Kind classifies a toast for styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Spec describes a toast to add.
type Spec struct {
	Kind     Kind
	Title    string
	Message  string
	Duration time.Duration
}

// Toast is an active notification.
type Toast struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// Progress returns the elapsed fraction of the toast's lifetime in [0, 1].
func (t Toast) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.CreatedAt)
	if elapsed <= 0 {
		return 0
	}
	frac := float64(elapsed) / float64(t.Duration)
	if frac > 1 {
		return 1
	}
	return frac
}

// Remaining returns the fraction of lifetime left, for countdown bars.
func (t Toast) Remaining(now time.Time) float64 {
	return 1 - t.Progress(now)
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithOnChange registers a callback invoked after every add, removal or
// expiry. It runs outside the manager's lock.
func WithOnChange(fn func()) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// Manager holds the insertion-ordered set of active toasts.
type Manager struct {
	mu       sync.Mutex
	toasts   []Toast
	timers   map[string]*time.Timer
	closed   bool
	now      func() time.Time
	onChange func()
}

// NewManager returns an empty Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		timers: make(map[string]*time.Timer),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetOnChange replaces the change callback. The UI program is usually
// created after the manager, so it is wired late.
func (m *Manager) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Add appends a toast, schedules its expiry and returns its id. After Close
// the toast is still returned but never displayed.
func (m *Manager) Add(spec Spec) string {
	if spec.Kind == "" {
		spec.Kind = KindInfo
	}
	if spec.Duration <= 0 {
		spec.Duration = DefaultDuration
	}

	m.mu.Lock()
	id := m.freshIDLocked()
	if m.closed {
		m.mu.Unlock()
		return id
	}
	m.toasts = append(m.toasts, Toast{
		ID:        id,
		Kind:      spec.Kind,
		Title:     spec.Title,
		Message:   spec.Message,
		Duration:  spec.Duration,
		CreatedAt: m.now(),
	})
	m.timers[id] = time.AfterFunc(spec.Duration, func() { m.expire(id) })
	notify := m.onChange
	m.mu.Unlock()

	if notify != nil {
		notify()
	}
	return id
}

// Remove dismisses the toast with the given id. Unknown ids are ignored.
func (m *Manager) Remove(id string) {
	if m.remove(id) {
		m.notify()
	}
}

// Success adds a success toast with the default duration.
func (m *Manager) Success(message, title string) string {
	return m.Add(Spec{Kind: KindSuccess, Title: title, Message: message})
}

// Error adds an error toast with the default duration.
func (m *Manager) Error(message, title string) string {
	return m.Add(Spec{Kind: KindError, Title: title, Message: message})
}

// Warning adds a warning toast with the default duration.
func (m *Manager) Warning(message, title string) string {
	return m.Add(Spec{Kind: KindWarning, Title: title, Message: message})
}

// Info adds an info toast with the default duration.
func (m *Manager) Info(message, title string) string {
	return m.Add(Spec{Kind: KindInfo, Title: title, Message: message})
}

// Active returns a copy of the active toasts, oldest first.
func (m *Manager) Active() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) == 0 {
		return nil
	}
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Len returns the number of active toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// Close stops all pending timers and drops the active set.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
	m.toasts = nil
	m.closed = true
}

func (m *Manager) expire(id string) {
	if m.remove(id) {
		m.notify()
	}
}

func (m *Manager) remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, ok := m.timers[id]; ok {
		timer.Stop()
		delete(m.timers, id)
	}
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (m *Manager) freshIDLocked() string {
	for {
		id := uuid.NewString()[:8]
		if _, taken := m.timers[id]; !taken {
			return id
		}
	}
}
