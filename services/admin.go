package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Admin exposes the moderation and housekeeping endpoints. Every call
// requires an ADMIN session; the server rejects anything else.
type Admin struct {
	rest *transport.Client
}

func NewAdmin(rest *transport.Client) *Admin {
	return &Admin{rest: rest}
}

func (s *Admin) Users(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := s.rest.Get(ctx, "/api/admin/users", &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// SetRole changes a user's account tier.
func (s *Admin) SetRole(ctx context.Context, userID string, role core.Role) (*core.User, error) {
	body := map[string]core.Role{"role": role}
	var user core.User
	if err := s.rest.Put(ctx, "/api/admin/users/"+transport.PathEscape(userID)+"/role", body, &user); err != nil {
		return nil, fmt.Errorf("failed to set role for user %s: %w", userID, err)
	}
	return &user, nil
}

// Ban locks a user out of the platform. Their sessions are revoked server
// side on the next token refresh.
func (s *Admin) Ban(ctx context.Context, userID string) error {
	if err := s.rest.Put(ctx, "/api/admin/users/"+transport.PathEscape(userID)+"/ban", nil, nil); err != nil {
		return fmt.Errorf("failed to ban user %s: %w", userID, err)
	}
	return nil
}

// DeleteUser removes an account and its owned content.
func (s *Admin) DeleteUser(ctx context.Context, userID string) error {
	if err := s.rest.Delete(ctx, "/api/admin/users/"+transport.PathEscape(userID)); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	return nil
}

func (s *Admin) Unban(ctx context.Context, userID string) error {
	if err := s.rest.Put(ctx, "/api/admin/users/"+transport.PathEscape(userID)+"/unban", nil, nil); err != nil {
		return fmt.Errorf("failed to unban user %s: %w", userID, err)
	}
	return nil
}

func (s *Admin) Stats(ctx context.Context) (*core.AdminStats, error) {
	var stats core.AdminStats
	if err := s.rest.Get(ctx, "/api/admin/stats", &stats); err != nil {
		return nil, fmt.Errorf("failed to load platform stats: %w", err)
	}
	return &stats, nil
}

// Health returns the server's component health map, keyed by subsystem.
func (s *Admin) Health(ctx context.Context) (map[string]string, error) {
	var health map[string]string
	if err := s.rest.Get(ctx, "/api/admin/health", &health); err != nil {
		return nil, fmt.Errorf("failed to load health: %w", err)
	}
	return health, nil
}

// CleanupExpiredVouchers asks the server to sweep vouchers past their
// expiry and returns the number removed.
func (s *Admin) CleanupExpiredVouchers(ctx context.Context) (int, error) {
	var out struct {
		Removed int `json:"removed"`
	}
	if err := s.rest.Post(ctx, "/api/admin/cleanup/vouchers", nil, &out); err != nil {
		return 0, fmt.Errorf("failed to clean up vouchers: %w", err)
	}
	return out.Removed, nil
}

// CleanupExpiredChats asks the server to drop chats whose outings are past
// and returns the number removed.
func (s *Admin) CleanupExpiredChats(ctx context.Context) (int, error) {
	var out struct {
		Removed int `json:"removed"`
	}
	if err := s.rest.Post(ctx, "/api/admin/cleanup/chats", nil, &out); err != nil {
		return 0, fmt.Errorf("failed to clean up chats: %w", err)
	}
	return out.Removed, nil
}
