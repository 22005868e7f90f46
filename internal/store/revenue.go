package store

import (
	"context"
	"fmt"

	"coachtrack/internal/model"
)

// PipelineClients lists the user's contacts tagged as active sales
// prospects; callers sum the revenue themselves.
func (s *Store) PipelineClients(ctx context.Context, userID string) ([]model.Client, error) {
	return s.Clients(ctx, userID, model.ClientTypePipeline)
}

// TotalGrossRevenue sums every sale the user has closed.
func (s *Store) TotalGrossRevenue(ctx context.Context, userID string) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&model.Sale{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("query gross revenue: %w", err)
	}
	return total, nil
}
