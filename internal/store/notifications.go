package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/taskboard/taskboard/internal/model"
	"github.com/taskboard/taskboard/internal/persist"
)

// feedCap bounds the notification feed; older entries beyond it are
// dropped on push.
const feedCap = 100

// snapshotKey is the fixed key the feed persists under.
const snapshotKey = "notifications.snapshot"

// feedSnapshot is the subset of state persisted across restarts.
type feedSnapshot struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// NotificationStore holds a bounded, deduplicated, most-recent-first
// notification feed with an exactly-consistent unread counter.
//
// The feed and the counter persist under a single fixed key after
// every state change and are reloaded at construction, so the feed
// survives restarts without a network round-trip. The same
// last-writer-wins caveat as TaskStore applies to overlapping
// remote-backed mutations.
type NotificationStore struct {
	mu      sync.Mutex
	svc     NotificationService
	kv      persist.KV
	feed    []model.Notification
	unread  int
	loading bool
}

// NewNotificationStore creates a notification store backed by svc,
// persisting through kv. Any previously saved snapshot is loaded
// immediately; a corrupt or missing snapshot yields an empty feed.
func NewNotificationStore(
	svc NotificationService,
	kv persist.KV,
) *NotificationStore {
	s := &NotificationStore{svc: svc, kv: kv}
	s.load()
	return s
}

// Notifications returns a copy of the feed, most recent first.
func (s *NotificationStore) Notifications() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.feed))
	copy(out, s.feed)
	return out
}

// UnreadCount returns the current unread counter.
func (s *NotificationStore) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Loading reports whether a fetch is in flight.
func (s *NotificationStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// FetchAll replaces the feed with the full remote list and recounts
// unread entries from their read flags. On failure the previous feed
// survives unchanged and the error is returned as-is.
func (s *NotificationStore) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	notifications, err := s.svc.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.feed = notifications
	s.unread = countUnread(s.feed)
	s.save()
	return nil
}

// MarkRead marks one notification as read, remote first. The unread
// counter is recounted from the feed's flags rather than decremented,
// which self-corrects any prior drift.
func (s *NotificationStore) MarkRead(ctx context.Context, id int) error {
	if err := s.svc.MarkRead(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feed {
		if s.feed[i].ID == id {
			s.feed[i].IsRead = true
		}
	}
	s.unread = countUnread(s.feed)
	s.save()
	return nil
}

// MarkAllRead marks every notification as read, remote first.
func (s *NotificationStore) MarkAllRead(ctx context.Context) error {
	if err := s.svc.MarkAllRead(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.feed {
		s.feed[i].IsRead = true
	}
	s.unread = 0
	s.save()
	return nil
}

// Push inserts a notification delivered out of band (no remote call).
// A duplicate id is ignored entirely. Otherwise the entry is
// prepended and the feed truncated to the newest 100 entries; the
// counter moves only for the incoming entry, so an unread entry
// evicted by the cap is not re-counted. That lets the counter exceed
// the visible unread entries after heavy push volume — an accepted
// bounded-retention trade-off.
func (s *NotificationStore) Push(n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.feed {
		if existing.ID == n.ID {
			return
		}
	}

	s.feed = append([]model.Notification{n}, s.feed...)
	if len(s.feed) > feedCap {
		s.feed = s.feed[:feedCap]
	}
	if !n.IsRead {
		s.unread++
	}
	s.save()
}

// Remove deletes one notification, remote first. The counter drops
// only when the removed entry was unread, floored at zero.
func (s *NotificationStore) Remove(ctx context.Context, id int) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.feed {
		if n.ID == id {
			if !n.IsRead && s.unread > 0 {
				s.unread--
			}
			s.feed = append(s.feed[:i], s.feed[i+1:]...)
			break
		}
	}
	s.save()
	return nil
}

// ClearAll empties the feed, remote first.
func (s *NotificationStore) ClearAll(ctx context.Context) error {
	if err := s.svc.ClearAll(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = nil
	s.unread = 0
	s.save()
	return nil
}

// save persists the feed snapshot. Best effort: a failed write is
// dropped, the next mutation rewrites the full snapshot anyway.
// Callers must hold s.mu.
func (s *NotificationStore) save() {
	data, err := json.Marshal(feedSnapshot{
		Notifications: s.feed,
		UnreadCount:   s.unread,
	})
	if err != nil {
		return
	}
	_ = s.kv.Write(snapshotKey, data)
}

// load restores the feed snapshot written by a previous session.
func (s *NotificationStore) load() {
	data, ok, err := s.kv.Read(snapshotKey)
	if err != nil || !ok {
		return
	}
	var snap feedSnapshot
	if json.Unmarshal(data, &snap) != nil {
		return
	}
	s.feed = snap.Notifications
	s.unread = snap.UnreadCount
}

// countUnread returns the number of entries whose read flag is false.
func countUnread(feed []model.Notification) int {
	count := 0
	for _, n := range feed {
		if !n.IsRead {
			count++
		}
	}
	return count
}
