package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Vouchers manages the signed-in user's reward vouchers.
type Vouchers struct {
	rest *transport.Client
}

func NewVouchers(rest *transport.Client) *Vouchers {
	return &Vouchers{rest: rest}
}

// Mine returns every voucher issued to the signed-in user.
func (s *Vouchers) Mine(ctx context.Context) ([]core.Voucher, error) {
	var vouchers []core.Voucher
	if err := s.rest.Get(ctx, "/api/vouchers/my", &vouchers); err != nil {
		return nil, fmt.Errorf("failed to load vouchers: %w", err)
	}
	return vouchers, nil
}

// Active returns only the vouchers that can still be redeemed.
func (s *Vouchers) Active(ctx context.Context) ([]core.Voucher, error) {
	var vouchers []core.Voucher
	if err := s.rest.Get(ctx, "/api/vouchers/my/active", &vouchers); err != nil {
		return nil, fmt.Errorf("failed to load active vouchers: %w", err)
	}
	return vouchers, nil
}

func (s *Vouchers) ByID(ctx context.Context, id string) (*core.Voucher, error) {
	var voucher core.Voucher
	if err := s.rest.Get(ctx, "/api/vouchers/"+transport.PathEscape(id), &voucher); err != nil {
		return nil, fmt.Errorf("failed to load voucher %s: %w", id, err)
	}
	return &voucher, nil
}

// Redeem marks a voucher as used via its QR code. Business accounts scan
// and call this at the till.
func (s *Vouchers) Redeem(ctx context.Context, qrCode string) (*core.Voucher, error) {
	var voucher core.Voucher
	if err := s.rest.Post(ctx, "/api/vouchers/redeem/"+transport.PathEscape(qrCode), nil, &voucher); err != nil {
		return nil, fmt.Errorf("failed to redeem voucher: %w", err)
	}
	return &voucher, nil
}
