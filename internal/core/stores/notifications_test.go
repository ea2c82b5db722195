package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/snapshot"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

func newNotificationStore(snaps ports.SnapshotStore) *NotificationStore {
	s := NewNotifications(snaps)
	clock := time.Date(2025, 4, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestNotifications_AddStampsAndOrdersNewestFirst(t *testing.T) {
	s := newNotificationStore(nil)

	first := s.Add(domain.Notification{Title: "Low stock", Message: "Omeprazole 20mg"})
	second := s.Add(domain.Notification{Title: "E-prescription", Message: "New from SKIMS", Priority: PriorityHigh})

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, PriorityMedium, first.Priority)
	assert.Equal(t, NotificationInfo, first.Type)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, 2, s.UnreadCount())
}

func TestNotifications_ReadAndRemove(t *testing.T) {
	s := newNotificationStore(nil)
	a := s.Add(domain.Notification{Title: "a"})
	b := s.Add(domain.Notification{Title: "b"})

	assert.True(t, s.MarkAsRead(a.ID))
	assert.False(t, s.MarkAsRead("missing"))
	assert.Equal(t, 1, s.UnreadCount())

	assert.True(t, s.Remove(b.ID))
	assert.False(t, s.Remove(b.ID))
	assert.Zero(t, s.UnreadCount())

	s.Add(domain.Notification{Title: "c"})
	s.MarkAllAsRead()
	assert.Zero(t, s.UnreadCount())

	s.Clear()
	assert.Empty(t, s.List())
}

func TestNotifications_HasUnread(t *testing.T) {
	s := newNotificationStore(nil)
	n := s.Add(domain.Notification{Title: "Low stock", Message: "Omeprazole 20mg"})

	assert.True(t, s.HasUnread("Low stock", "Omeprazole 20mg"))
	s.MarkAsRead(n.ID)
	assert.False(t, s.HasUnread("Low stock", "Omeprazole 20mg"))
}

func TestNotifications_Snapshot(t *testing.T) {
	snaps := snapshot.NewMemory()
	s := newNotificationStore(snaps)
	n := s.Add(domain.Notification{Title: "kept"})

	reopened := NewNotifications(snaps)

	list := reopened.List()
	require.Len(t, list, 1)
	assert.Equal(t, n.ID, list[0].ID)
}
