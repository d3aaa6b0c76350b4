package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Notifications reads and acknowledges the signed-in user's notifications.
type Notifications struct {
	rest *transport.Client
}

func NewNotifications(rest *transport.Client) *Notifications {
	return &Notifications{rest: rest}
}

func (s *Notifications) All(ctx context.Context) ([]core.Notification, error) {
	var notifications []core.Notification
	if err := s.rest.Get(ctx, "/api/notifications", &notifications); err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return notifications, nil
}

func (s *Notifications) Unread(ctx context.Context) ([]core.Notification, error) {
	var notifications []core.Notification
	if err := s.rest.Get(ctx, "/api/notifications/unread", &notifications); err != nil {
		return nil, fmt.Errorf("failed to load unread notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the badge count without fetching the bodies.
func (s *Notifications) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := s.rest.Get(ctx, "/api/notifications/unread/count", &out); err != nil {
		return 0, fmt.Errorf("failed to load unread count: %w", err)
	}
	return out.Count, nil
}

// MarkRead acknowledges one notification and returns its updated state.
func (s *Notifications) MarkRead(ctx context.Context, id string) (*core.Notification, error) {
	var notification core.Notification
	if err := s.rest.Put(ctx, "/api/notifications/"+transport.PathEscape(id)+"/read", nil, &notification); err != nil {
		return nil, fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	return &notification, nil
}

// MarkAllRead acknowledges everything.
func (s *Notifications) MarkAllRead(ctx context.Context) error {
	if err := s.rest.Put(ctx, "/api/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

func (s *Notifications) Delete(ctx context.Context, id string) error {
	if err := s.rest.Delete(ctx, "/api/notifications/"+transport.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	return nil
}
