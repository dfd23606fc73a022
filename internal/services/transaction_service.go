package services

import (
	"context"
	"time"

	"fluxo/internal/logger"
	"fluxo/internal/models"
	"fluxo/internal/pagination"
	"fluxo/internal/store"
)

// openingBalanceCents is the starting balance credited to every account,
// R$ 3000.00.
const openingBalanceCents = 300_000

// FeedItem is a transaction decorated with display metadata for the feed.
type FeedItem struct {
	models.Transaction
	Display models.CategoryDisplay `json:"display"`
}

// Summary holds the account headline figures.
type Summary struct {
	Balance          int64 `json:"balance"`
	TransactionCount int   `json:"transaction_count"`
}

type transactionService struct {
	store  *store.TransactionStore
	engine Snapshotter
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txStore *store.TransactionStore, engine Snapshotter) TransactionServicer {
	return &transactionService{store: txStore, engine: engine}
}

// GetFeed returns the user's enriched transaction feed, newest first. The
// feed comes from the enrichment snapshot, so transient fallbacks for
// failed classifications are visible even though they are never persisted.
func (s *transactionService) GetFeed(ctx context.Context, userID string, req pagination.PageRequest, txType string) (pagination.PageResponse[FeedItem], error) {
	req.Defaults()

	txs, err := s.engine.Snapshot(ctx, userID)
	if err != nil {
		return pagination.PageResponse[FeedItem]{}, err
	}

	items := make([]FeedItem, 0, len(txs))
	for _, tx := range txs {
		if txType != "" && string(tx.Type) != txType {
			continue
		}
		items = append(items, FeedItem{
			Transaction: tx,
			Display:     models.DisplayFor(tx.Category, tx.Type),
		})
	}

	page := pagination.Slice(items, req)
	return pagination.NewPageResponse(page, req.Page, req.PageSize, int64(len(items))), nil
}

// SeedDemoData populates a fresh account with the reference transactions.
// It fails with ALREADY_SEEDED when any transactions exist.
func (s *transactionService) SeedDemoData(ctx context.Context, userID string) error {
	if err := s.store.Seed(ctx, userID, store.DemoSeeds(time.Now())); err != nil {
		return err
	}

	// Warm the enrichment session so classification starts right away
	// instead of on the next feed read.
	if _, err := s.engine.Snapshot(ctx, userID); err != nil {
		logger.Get().Warnw("failed to start enrichment after seeding",
			"user_id", userID,
			"error", err,
		)
	}
	return nil
}

// GetSummary returns the account balance and transaction count. The balance
// is the opening balance plus the sum of all signed amounts.
func (s *transactionService) GetSummary(ctx context.Context, userID string) (*Summary, error) {
	txs, err := s.engine.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := int64(openingBalanceCents)
	for _, tx := range txs {
		balance += tx.Amount
	}

	return &Summary{
		Balance:          balance,
		TransactionCount: len(txs),
	}, nil
}
