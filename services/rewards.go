package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Rewards manages business-sponsored prizes attached to events.
type Rewards struct {
	rest *transport.Client
}

func NewRewards(rest *transport.Client) *Rewards {
	return &Rewards{rest: rest}
}

// ByEvent returns the rewards attached to an event.
func (s *Rewards) ByEvent(ctx context.Context, eventID string) ([]core.Reward, error) {
	var rewards []core.Reward
	if err := s.rest.Get(ctx, "/api/rewards/event/"+transport.PathEscape(eventID), &rewards); err != nil {
		return nil, fmt.Errorf("failed to load rewards for event %s: %w", eventID, err)
	}
	return rewards, nil
}

// Mine returns rewards sponsored by the signed-in business account.
func (s *Rewards) Mine(ctx context.Context) ([]core.Reward, error) {
	var rewards []core.Reward
	if err := s.rest.Get(ctx, "/api/rewards/my", &rewards); err != nil {
		return nil, fmt.Errorf("failed to load my rewards: %w", err)
	}
	return rewards, nil
}

// Create sponsors a new reward. Business accounts only.
func (s *Rewards) Create(ctx context.Context, input core.CreateRewardInput) (*core.Reward, error) {
	var reward core.Reward
	if err := s.rest.Post(ctx, "/api/rewards", input, &reward); err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}
	return &reward, nil
}

func (s *Rewards) Delete(ctx context.Context, id string) error {
	if err := s.rest.Delete(ctx, "/api/rewards/"+transport.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete reward %s: %w", id, err)
	}
	return nil
}
