package remote

import (
	"context"
	"fmt"

	"github.com/taskboard/taskboard/internal/model"
)

// NotificationService exposes the tracker's notification endpoints.
type NotificationService struct {
	client *Client
}

// NewNotificationService creates a NotificationService on top of an
// API client.
func NewNotificationService(c *Client) *NotificationService {
	return &NotificationService{client: c}
}

// List fetches the user's notifications, most recent first.
func (s *NotificationService) List(
	ctx context.Context,
) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := s.client.Get(ctx, "/api/notifications/", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int) error {
	return s.client.Post(
		ctx, fmt.Sprintf("/api/notifications/%d/read/", id), nil, nil,
	)
}

// MarkAllRead marks every notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.client.Post(ctx, "/api/notifications/read_all/", nil, nil)
}

// Delete removes a single notification.
func (s *NotificationService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/notifications/%d/", id))
}

// ClearAll removes every notification.
func (s *NotificationService) ClearAll(ctx context.Context) error {
	return s.client.Delete(ctx, "/api/notifications/")
}
