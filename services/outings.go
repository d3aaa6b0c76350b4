package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Outings browses, creates and joins user-organized outings.
type Outings struct {
	rest *transport.Client
}

func NewOutings(rest *transport.Client) *Outings {
	return &Outings{rest: rest}
}

func (s *Outings) All(ctx context.Context) ([]core.Outing, error) {
	var outings []core.Outing
	if err := s.rest.Get(ctx, "/api/outings", &outings); err != nil {
		return nil, fmt.Errorf("failed to load outings: %w", err)
	}
	return outings, nil
}

func (s *Outings) Upcoming(ctx context.Context) ([]core.Outing, error) {
	var outings []core.Outing
	if err := s.rest.Get(ctx, "/api/outings/upcoming", &outings); err != nil {
		return nil, fmt.Errorf("failed to load upcoming outings: %w", err)
	}
	return outings, nil
}

func (s *Outings) ByID(ctx context.Context, id string) (*core.Outing, error) {
	var outing core.Outing
	if err := s.rest.Get(ctx, "/api/outings/"+transport.PathEscape(id), &outing); err != nil {
		return nil, fmt.Errorf("failed to load outing %s: %w", id, err)
	}
	return &outing, nil
}

// Mine returns outings organized by the signed-in user.
func (s *Outings) Mine(ctx context.Context) ([]core.Outing, error) {
	var outings []core.Outing
	if err := s.rest.Get(ctx, "/api/outings/my", &outings); err != nil {
		return nil, fmt.Errorf("failed to load my outings: %w", err)
	}
	return outings, nil
}

// ByEvent returns the outings attached to an event.
func (s *Outings) ByEvent(ctx context.Context, eventID string) ([]core.Outing, error) {
	var outings []core.Outing
	if err := s.rest.Get(ctx, "/api/outings/event/"+transport.PathEscape(eventID), &outings); err != nil {
		return nil, fmt.Errorf("failed to load outings for event %s: %w", eventID, err)
	}
	return outings, nil
}

func (s *Outings) Create(ctx context.Context, input core.CreateOutingInput) (*core.Outing, error) {
	var outing core.Outing
	if err := s.rest.Post(ctx, "/api/outings", input, &outing); err != nil {
		return nil, fmt.Errorf("failed to create outing: %w", err)
	}
	return &outing, nil
}

func (s *Outings) Delete(ctx context.Context, id string) error {
	if err := s.rest.Delete(ctx, "/api/outings/"+transport.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete outing %s: %w", id, err)
	}
	return nil
}

// Join adds the signed-in user to an outing's participants.
func (s *Outings) Join(ctx context.Context, id string) (*core.Outing, error) {
	var outing core.Outing
	if err := s.rest.Post(ctx, "/api/outings/"+transport.PathEscape(id)+"/join", nil, &outing); err != nil {
		return nil, fmt.Errorf("failed to join outing %s: %w", id, err)
	}
	return &outing, nil
}

// Leave removes the signed-in user from an outing's participants.
func (s *Outings) Leave(ctx context.Context, id string) (*core.Outing, error) {
	var outing core.Outing
	if err := s.rest.Post(ctx, "/api/outings/"+transport.PathEscape(id)+"/leave", nil, &outing); err != nil {
		return nil, fmt.Errorf("failed to leave outing %s: %w", id, err)
	}
	return &outing, nil
}
