package services

import (
	"context"
	"fmt"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/transport"
)

// Reports files and tracks moderation reports.
type Reports struct {
	rest *transport.Client
}

func NewReports(rest *transport.Client) *Reports {
	return &Reports{rest: rest}
}

// File submits a new report against another user.
func (s *Reports) File(ctx context.Context, input core.CreateReportInput) (*core.Report, error) {
	var report core.Report
	if err := s.rest.Post(ctx, "/api/reports", input, &report); err != nil {
		return nil, fmt.Errorf("failed to file report: %w", err)
	}
	return &report, nil
}

// Mine returns reports filed by the signed-in user.
func (s *Reports) Mine(ctx context.Context) ([]core.Report, error) {
	var reports []core.Report
	if err := s.rest.Get(ctx, "/api/reports/my", &reports); err != nil {
		return nil, fmt.Errorf("failed to load my reports: %w", err)
	}
	return reports, nil
}

// All returns every report. Admin accounts only.
func (s *Reports) All(ctx context.Context) ([]core.Report, error) {
	var reports []core.Report
	if err := s.rest.Get(ctx, "/api/reports", &reports); err != nil {
		return nil, fmt.Errorf("failed to load reports: %w", err)
	}
	return reports, nil
}

func (s *Reports) ByID(ctx context.Context, id string) (*core.Report, error) {
	var report core.Report
	if err := s.rest.Get(ctx, "/api/reports/"+transport.PathEscape(id), &report); err != nil {
		return nil, fmt.Errorf("failed to load report %s: %w", id, err)
	}
	return &report, nil
}

// ByUser returns reports filed against a user. Admin accounts only.
func (s *Reports) ByUser(ctx context.Context, userID string) ([]core.Report, error) {
	var reports []core.Report
	if err := s.rest.Get(ctx, "/api/reports/user/"+transport.PathEscape(userID), &reports); err != nil {
		return nil, fmt.Errorf("failed to load reports for user %s: %w", userID, err)
	}
	return reports, nil
}

// Pending returns reports awaiting moderation. Admin accounts only.
func (s *Reports) Pending(ctx context.Context) ([]core.Report, error) {
	var reports []core.Report
	if err := s.rest.Get(ctx, "/api/reports/pending", &reports); err != nil {
		return nil, fmt.Errorf("failed to load pending reports: %w", err)
	}
	return reports, nil
}

// Resolve moves a report to a terminal moderation status. Admin accounts
// only.
func (s *Reports) Resolve(ctx context.Context, id string, status core.ReportStatus) (*core.Report, error) {
	body := map[string]core.ReportStatus{"status": status}
	var report core.Report
	if err := s.rest.Put(ctx, "/api/reports/"+transport.PathEscape(id)+"/status", body, &report); err != nil {
		return nil, fmt.Errorf("failed to resolve report %s: %w", id, err)
	}
	return &report, nil
}
