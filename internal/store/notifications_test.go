package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/model"
	"github.com/taskboard/taskboard/tests/testutil"
)

// fakeNotificationService implements NotificationService with
// overridable behavior. Nil funcs succeed.
type fakeNotificationService struct {
	listFn        func() ([]model.Notification, error)
	markReadFn    func(int) error
	markAllReadFn func() error
	deleteFn      func(int) error
	clearAllFn    func() error
}

func (f *fakeNotificationService) List(context.Context) ([]model.Notification, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn()
}

func (f *fakeNotificationService) MarkRead(_ context.Context, id int) error {
	if f.markReadFn == nil {
		return nil
	}
	return f.markReadFn(id)
}

func (f *fakeNotificationService) MarkAllRead(context.Context) error {
	if f.markAllReadFn == nil {
		return nil
	}
	return f.markAllReadFn()
}

func (f *fakeNotificationService) Delete(_ context.Context, id int) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(id)
}

func (f *fakeNotificationService) ClearAll(context.Context) error {
	if f.clearAllFn == nil {
		return nil
	}
	return f.clearAllFn()
}

func unreadNotification(id int) model.Notification {
	return model.Notification{
		ID:      id,
		Message: fmt.Sprintf("notification %d", id),
	}
}

func TestPushDedupAndMarkRead(t *testing.T) {
	s := NewNotificationStore(&fakeNotificationService{}, testutil.NewTestKV(t))

	s.Push(unreadNotification(1))
	assert.Equal(t, 1, s.UnreadCount())
	assert.Len(t, s.Notifications(), 1)

	// Duplicate push: no mutation, no count change.
	s.Push(unreadNotification(1))
	assert.Equal(t, 1, s.UnreadCount())
	assert.Len(t, s.Notifications(), 1)

	s.Push(unreadNotification(2))
	assert.Equal(t, 2, s.UnreadCount())
	assert.Len(t, s.Notifications(), 2)

	require.NoError(t, s.MarkRead(context.Background(), 1))
	assert.Equal(t, 1, s.UnreadCount())
	require.Len(t, s.Notifications(), 2)
	for _, n := range s.Notifications() {
		if n.ID == 1 {
			assert.True(t, n.IsRead)
		}
	}
}

func TestPushOrderingAndReadEntries(t *testing.T) {
	s := NewNotificationStore(&fakeNotificationService{}, testutil.NewTestKV(t))

	s.Push(unreadNotification(1))
	s.Push(model.Notification{ID: 2, IsRead: true})
	s.Push(unreadNotification(3))

	feed := s.Notifications()
	require.Len(t, feed, 3)
	// Most recent first.
	assert.Equal(t, []int{3, 2, 1}, []int{feed[0].ID, feed[1].ID, feed[2].ID})
	// The already-read push did not move the counter.
	assert.Equal(t, 2, s.UnreadCount())
}

func TestPushTruncatesToCap(t *testing.T) {
	s := NewNotificationStore(&fakeNotificationService{}, testutil.NewTestKV(t))

	for i := 1; i <= feedCap+5; i++ {
		s.Push(unreadNotification(i))
	}

	feed := s.Notifications()
	require.Len(t, feed, feedCap)
	assert.Equal(t, feedCap+5, feed[0].ID)
	// Eviction does not decrement: the counter keeps every pushed
	// unread entry even though five fell off the end.
	assert.Equal(t, feedCap+5, s.UnreadCount())
}

func TestFetchAllRecountsUnread(t *testing.T) {
	svc := &fakeNotificationService{
		listFn: func() ([]model.Notification, error) {
			return []model.Notification{
				{ID: 1, IsRead: true},
				{ID: 2},
				{ID: 3},
			}, nil
		},
	}
	s := NewNotificationStore(svc, testutil.NewTestKV(t))

	require.NoError(t, s.FetchAll(context.Background()))
	assert.Len(t, s.Notifications(), 3)
	assert.Equal(t, 2, s.UnreadCount())
	assert.False(t, s.Loading())
}

func TestFetchAllFailureLeavesFeedIntact(t *testing.T) {
	fail := false
	svc := &fakeNotificationService{
		listFn: func() ([]model.Notification, error) {
			if fail {
				return nil, errors.New("offline")
			}
			return []model.Notification{{ID: 1}}, nil
		},
	}
	s := NewNotificationStore(svc, testutil.NewTestKV(t))
	require.NoError(t, s.FetchAll(context.Background()))

	fail = true
	err := s.FetchAll(context.Background())
	require.EqualError(t, err, "offline")
	assert.Len(t, s.Notifications(), 1)
	assert.Equal(t, 1, s.UnreadCount())
	assert.False(t, s.Loading())
}

func TestMarkAllRead(t *testing.T) {
	s := NewNotificationStore(&fakeNotificationService{}, testutil.NewTestKV(t))
	s.Push(unreadNotification(1))
	s.Push(unreadNotification(2))
	s.Push(unreadNotification(3))

	require.NoError(t, s.MarkAllRead(context.Background()))
	assert.Zero(t, s.UnreadCount())
	for _, n := range s.Notifications() {
		assert.True(t, n.IsRead)
	}
}

func TestMarkReadRemoteFailureLeavesStateIntact(t *testing.T) {
	svc := &fakeNotificationService{
		markReadFn: func(int) error { return errors.New("denied") },
	}
	s := NewNotificationStore(svc, testutil.NewTestKV(t))
	s.Push(unreadNotification(1))

	err := s.MarkRead(context.Background(), 1)
	require.EqualError(t, err, "denied")
	assert.Equal(t, 1, s.UnreadCount())
	assert.False(t, s.Notifications()[0].IsRead)
}

func TestRemoveDecrementsOnlyForUnread(t *testing.T) {
	s := NewNotificationStore(&fakeNotificationService{}, testutil.NewTestKV(t))
	s.Push(model.Notification{ID: 1, IsRead: true})
	s.Push(unreadNotification(2))

	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Equal(t, 1, s.UnreadCount())
	require.Len(t, s.Notifications(), 1)

	require.NoError(t, s.Remove(context.Background(), 2))
	assert.Zero(t, s.UnreadCount())
	assert.Empty(t, s.Notifications())
}

func TestRemoveTwiceNeverGoesNegative(t *testing.T) {
	deleted := false
	svc := &fakeNotificationService{
		deleteFn: func(int) error {
			if deleted {
				return errors.New("not found")
			}
			deleted = true
			return nil
		},
	}
	s := NewNotificationStore(svc, testutil.NewTestKV(t))
	s.Push(unreadNotification(1))

	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Zero(t, s.UnreadCount())

	err := s.Remove(context.Background(), 1)
	require.EqualError(t, err, "not found")
	assert.Zero(t, s.UnreadCount())
}

func TestRemoveFloorsCounterUnderDrift(t *testing.T) {
	kv := testutil.NewTestKV(t)

	// A snapshot whose counter already drifted below the feed's
	// actual unread entries.
	data, err := json.Marshal(feedSnapshot{
		Notifications: []model.Notification{{ID: 1}},
		UnreadCount:   0,
	})
	require.NoError(t, err)
	require.NoError(t, kv.Write(snapshotKey, data))

	s := NewNotificationStore(&fakeNotificationService{}, kv)
	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Zero(t, s.UnreadCount())
	assert.Empty(t, s.Notifications())
}

func TestClearAll(t *testing.T) {
	s := NewNotificationStore(&fakeNotificationService{}, testutil.NewTestKV(t))
	s.Push(unreadNotification(1))
	s.Push(unreadNotification(2))

	require.NoError(t, s.ClearAll(context.Background()))
	assert.Empty(t, s.Notifications())
	assert.Zero(t, s.UnreadCount())
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	kv := testutil.NewTestKV(t)

	first := NewNotificationStore(&fakeNotificationService{}, kv)
	first.Push(unreadNotification(1))
	first.Push(model.Notification{ID: 2, IsRead: true})

	// A second store on the same storage sees the saved feed without
	// any remote call.
	second := NewNotificationStore(&fakeNotificationService{
		listFn: func() ([]model.Notification, error) {
			t.Fatal("restore must not hit the remote service")
			return nil, nil
		},
	}, kv)

	require.Len(t, second.Notifications(), 2)
	assert.Equal(t, 2, second.Notifications()[0].ID)
	assert.Equal(t, 1, second.UnreadCount())
}

func TestCorruptSnapshotYieldsEmptyFeed(t *testing.T) {
	kv := testutil.NewTestKV(t)
	require.NoError(t, kv.Write(snapshotKey, []byte("not json")))

	s := NewNotificationStore(&fakeNotificationService{}, kv)
	assert.Empty(t, s.Notifications())
	assert.Zero(t, s.UnreadCount())
}
