package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Users reads and updates user profiles.
type Users struct {
	rest *transport.Client
}

func NewUsers(rest *transport.Client) *Users {
	return &Users{rest: rest}
}

// Me returns the signed-in user's profile as the server sees it. This is
// the authoritative copy; the session snapshot can lag behind it.
func (s *Users) Me(ctx context.Context) (*core.User, error) {
	var user core.User
	if err := s.rest.Get(ctx, "/api/users/me", &user); err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &user, nil
}

// All returns the public user directory.
func (s *Users) All(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := s.rest.Get(ctx, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (s *Users) ByID(ctx context.Context, id string) (*core.User, error) {
	var user core.User
	if err := s.rest.Get(ctx, "/api/users/"+transport.PathEscape(id), &user); err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return &user, nil
}

// UpdateMe changes the signed-in user's display name.
func (s *Users) UpdateMe(ctx context.Context, name string) (*core.User, error) {
	body := map[string]string{"name": name}
	var user core.User
	if err := s.rest.Put(ctx, "/api/users/me", body, &user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// Upgrade switches the signed-in user's account to the premium tier.
func (s *Users) Upgrade(ctx context.Context) (*core.User, error) {
	var user core.User
	if err := s.rest.Post(ctx, "/api/users/me/upgrade", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to upgrade account: %w", err)
	}
	return &user, nil
}
