package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Reviews reads and writes event and outing ratings.
type Reviews struct {
	rest *transport.Client
}

func NewReviews(rest *transport.Client) *Reviews {
	return &Reviews{rest: rest}
}

func (s *Reviews) Create(ctx context.Context, input core.CreateReviewInput) (*core.Review, error) {
	var review core.Review
	if err := s.rest.Post(ctx, "/api/reviews", input, &review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *Reviews) ByEvent(ctx context.Context, eventID string) ([]core.Review, error) {
	var reviews []core.Review
	if err := s.rest.Get(ctx, "/api/reviews/event/"+transport.PathEscape(eventID), &reviews); err != nil {
		return nil, fmt.Errorf("failed to load reviews for event %s: %w", eventID, err)
	}
	return reviews, nil
}

func (s *Reviews) ByOuting(ctx context.Context, outingID string) ([]core.Review, error) {
	var reviews []core.Review
	if err := s.rest.Get(ctx, "/api/reviews/outing/"+transport.PathEscape(outingID), &reviews); err != nil {
		return nil, fmt.Errorf("failed to load reviews for outing %s: %w", outingID, err)
	}
	return reviews, nil
}

// ByUser returns reviews written by a user.
func (s *Reviews) ByUser(ctx context.Context, userID string) ([]core.Review, error) {
	var reviews []core.Review
	if err := s.rest.Get(ctx, "/api/reviews/user/"+transport.PathEscape(userID), &reviews); err != nil {
		return nil, fmt.Errorf("failed to load reviews by user %s: %w", userID, err)
	}
	return reviews, nil
}

// OutingAverage returns an outing's mean rating.
func (s *Reviews) OutingAverage(ctx context.Context, outingID string) (float64, error) {
	var out struct {
		Average float64 `json:"average"`
	}
	if err := s.rest.Get(ctx, "/api/reviews/outing/"+transport.PathEscape(outingID)+"/average", &out); err != nil {
		return 0, fmt.Errorf("failed to load average rating for outing %s: %w", outingID, err)
	}
	return out.Average, nil
}

func (s *Reviews) Delete(ctx context.Context, id string) error {
	if err := s.rest.Delete(ctx, "/api/reviews/"+transport.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}
