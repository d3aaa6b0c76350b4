// Package services holds the platform feature clients. Each service is a
// thin, stateless consumer of the shared authorized HTTP pipeline; none of
// them touches session state beyond reading it.
package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Events browses and manages platform events.
type Events struct {
	rest *transport.Client
}

func NewEvents(rest *transport.Client) *Events {
	return &Events{rest: rest}
}

// All returns every published event.
func (s *Events) All(ctx context.Context) ([]core.Event, error) {
	var events []core.Event
	if err := s.rest.Get(ctx, "/api/events", &events); err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

// Upcoming returns events with a future date.
func (s *Events) Upcoming(ctx context.Context) ([]core.Event, error) {
	var events []core.Event
	if err := s.rest.Get(ctx, "/api/events/upcoming", &events); err != nil {
		return nil, fmt.Errorf("failed to load upcoming events: %w", err)
	}
	return events, nil
}

// ByID returns one event.
func (s *Events) ByID(ctx context.Context, id string) (*core.Event, error) {
	var event core.Event
	if err := s.rest.Get(ctx, "/api/events/"+transport.PathEscape(id), &event); err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", id, err)
	}
	return &event, nil
}

// Mine returns events created by the signed-in user.
func (s *Events) Mine(ctx context.Context) ([]core.Event, error) {
	var events []core.Event
	if err := s.rest.Get(ctx, "/api/events/my", &events); err != nil {
		return nil, fmt.Errorf("failed to load my events: %w", err)
	}
	return events, nil
}

// Create publishes a new event. Business accounts only; the server enforces
// the role.
func (s *Events) Create(ctx context.Context, input core.CreateEventInput) (*core.Event, error) {
	var event core.Event
	if err := s.rest.Post(ctx, "/api/events", input, &event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// Update replaces an event the signed-in user owns.
func (s *Events) Update(ctx context.Context, id string, input core.CreateEventInput) (*core.Event, error) {
	var event core.Event
	if err := s.rest.Put(ctx, "/api/events/"+transport.PathEscape(id), input, &event); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return &event, nil
}

// Delete removes an event the signed-in user owns.
func (s *Events) Delete(ctx context.Context, id string) error {
	if err := s.rest.Delete(ctx, "/api/events/"+transport.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}
