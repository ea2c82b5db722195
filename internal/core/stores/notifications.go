package stores

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// Notification priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification types
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// NotificationStore holds in-app notices. It has no remote table; the local
// snapshot is its only persistence.
type NotificationStore struct {
	mu    sync.RWMutex
	items []domain.Notification
	snaps ports.SnapshotStore
	now   func() time.Time
}

// NewNotifications restores the notification snapshot
func NewNotifications(snaps ports.SnapshotStore) *NotificationStore {
	s := &NotificationStore{snaps: snaps, now: time.Now}
	restore(snaps, ports.SnapshotNotifications, &s.items)
	return s
}

// List returns every notification, newest first
func (s *NotificationStore) List() []domain.Notification {
	s.mu.RLock()
	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// UnreadCount returns the number of unread notifications
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// HasUnread reports whether an unread notification with the same title and
// message exists
func (s *NotificationStore) HasUnread(title, message string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if !item.Read && item.Title == title && item.Message == message {
			return true
		}
	}
	return false
}

// Add stamps n with a fresh id and the current time and stores it unread
func (s *NotificationStore) Add(n domain.Notification) domain.Notification {
	n.ID = uuid.NewString()
	n.Timestamp = s.now()
	n.Read = false
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.Type == "" {
		n.Type = NotificationInfo
	}

	s.mu.Lock()
	s.items = append([]domain.Notification{n}, s.items...)
	s.mu.Unlock()

	s.save()
	return n
}

// MarkAsRead marks one notification read. It reports false for unknown ids.
func (s *NotificationStore) MarkAsRead(id string) bool {
	return s.mutate(func(items []domain.Notification) ([]domain.Notification, bool) {
		for i := range items {
			if items[i].ID == id {
				items[i].Read = true
				return items, true
			}
		}
		return items, false
	})
}

// MarkAllAsRead marks every notification read
func (s *NotificationStore) MarkAllAsRead() {
	s.mutate(func(items []domain.Notification) ([]domain.Notification, bool) {
		for i := range items {
			items[i].Read = true
		}
		return items, true
	})
}

// Remove deletes one notification. It reports false for unknown ids.
func (s *NotificationStore) Remove(id string) bool {
	return s.mutate(func(items []domain.Notification) ([]domain.Notification, bool) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i:i], items[i+1:]...), true
			}
		}
		return items, false
	})
}

// Clear deletes every notification
func (s *NotificationStore) Clear() {
	s.mutate(func([]domain.Notification) ([]domain.Notification, bool) {
		return nil, true
	})
}

func (s *NotificationStore) mutate(fn func([]domain.Notification) ([]domain.Notification, bool)) bool {
	s.mu.Lock()
	next, changed := fn(s.items)
	s.items = next
	s.mu.Unlock()

	if changed {
		s.save()
	}
	return changed
}

func (s *NotificationStore) save() {
	s.mu.RLock()
	items := make([]domain.Notification, len(s.items))
	copy(items, s.items)
	s.mu.RUnlock()
	persist(s.snaps, ports.SnapshotNotifications, items)
}
