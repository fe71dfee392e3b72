package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// DefaultToastDuration applies when a caller does not pick one.
const DefaultToastDuration = 3 * time.Second

// Toast is a transient notification. Duration 0 means it stays until
// dismissed.
type Toast struct {
	ID       string
	Type     ToastType
	Message  string
	Duration time.Duration
}

// ToastStore keeps the active toasts in insertion order (= display order) and
// expires them on independent timers. Removal is keyed by ID and idempotent,
// so overlapping timers cannot interfere.
type ToastStore struct {
	notifier

	mu     sync.Mutex
	toasts []Toast
}

func NewToastStore() *ToastStore { return &ToastStore{} }

// Add appends a toast with the default duration and returns its ID.
func (s *ToastStore) Add(typ ToastType, message string) string {
	return s.AddWithDuration(typ, message, DefaultToastDuration)
}

// AddWithDuration appends a toast and, for duration > 0, schedules its
// removal once the duration elapses.
func (s *ToastStore) AddWithDuration(typ ToastType, message string, duration time.Duration) string {
	t := Toast{ID: uuid.NewString(), Type: typ, Message: message, Duration: duration}
	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()
	if duration > 0 {
		time.AfterFunc(duration, func() { s.Remove(t.ID) })
	}
	s.notify()
	return t.ID
}

// Remove drops the toast with the given ID; unknown IDs are a no-op.
func (s *ToastStore) Remove(id string) {
	s.mu.Lock()
	removed := false
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.notify()
	}
}

// Toasts returns a copy of the active toasts in display order.
func (s *ToastStore) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}
