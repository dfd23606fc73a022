package services

import (
	"context"

	"fluxo/internal/insights"
)

type insightService struct {
	engine Snapshotter
}

// NewInsightService creates a new insight service
func NewInsightService(engine Snapshotter) InsightServicer {
	return &insightService{engine: engine}
}

// ExpenseBreakdown returns outbound spend per category, largest first.
func (s *insightService) ExpenseBreakdown(ctx context.Context, userID string) ([]insights.CategoryTotal, error) {
	txs, err := s.engine.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return insights.Aggregate(txs), nil
}

// Recommendations returns spending advice derived from the breakdown.
func (s *insightService) Recommendations(ctx context.Context, userID string) ([]insights.Recommendation, error) {
	txs, err := s.engine.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return insights.Recommend(insights.Aggregate(txs)), nil
}

// Offers returns contextual offers derived from the breakdown.
func (s *insightService) Offers(ctx context.Context, userID string) ([]insights.Offer, error) {
	txs, err := s.engine.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return insights.Offers(insights.Aggregate(txs)), nil
}
