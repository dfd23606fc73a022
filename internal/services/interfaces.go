// Package services contains the business logic between HTTP handlers and
// the storage/enrichment layers.
package services

import (
	"context"

	"fluxo/internal/insights"
	"fluxo/internal/models"
	"fluxo/internal/pagination"
)

// Snapshotter provides the latest merged transaction set for a user. The
// enrichment engine implements it.
type Snapshotter interface {
	Snapshot(ctx context.Context, userID string) ([]models.Transaction, error)
}

// UserServicer handles user accounts.
type UserServicer interface {
	CreateAnonymous(ctx context.Context) (*models.User, error)
}

// TransactionServicer handles the transaction feed.
type TransactionServicer interface {
	GetFeed(ctx context.Context, userID string, req pagination.PageRequest, txType string) (pagination.PageResponse[FeedItem], error)
	SeedDemoData(ctx context.Context, userID string) error
	GetSummary(ctx context.Context, userID string) (*Summary, error)
}

// InsightServicer computes aggregations, recommendations and offers.
type InsightServicer interface {
	ExpenseBreakdown(ctx context.Context, userID string) ([]insights.CategoryTotal, error)
	Recommendations(ctx context.Context, userID string) ([]insights.Recommendation, error)
	Offers(ctx context.Context, userID string) ([]insights.Offer, error)
}
