// Package store persists transactions and publishes change notifications.
// Every mutation re-emits the user's full transaction set to all active
// subscribers, so consumers always reconcile against complete state instead
// of applying deltas.
package store

import (
	"context"
	"sync"

	apperrors "fluxo/internal/errors"
	"fluxo/internal/models"

	"gorm.io/gorm"
)

// TransactionStore is a GORM-backed store with in-process subscriptions.
type TransactionStore struct {
	db *gorm.DB

	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

type subscriber struct {
	ch chan []models.Transaction
}

// NewTransactionStore creates a transaction store.
func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{
		db:   db,
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

// Subscribe returns a channel that receives the user's full transaction set:
// once immediately, then again after every mutation. The channel has a
// buffer of one and emissions coalesce — a slow consumer only ever sees the
// latest set, never a backlog of stale ones. The subscription ends and the
// channel closes when ctx is cancelled.
func (s *TransactionStore) Subscribe(ctx context.Context, userID string) (<-chan []models.Transaction, error) {
	txs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub := &subscriber{ch: make(chan []models.Transaction, 1)}
	sub.ch <- txs

	s.mu.Lock()
	if s.subs[userID] == nil {
		s.subs[userID] = make(map[*subscriber]struct{})
	}
	s.subs[userID][sub] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs[userID], sub)
		if len(s.subs[userID]) == 0 {
			delete(s.subs, userID)
		}
		s.mu.Unlock()
		close(sub.ch)
	}()

	return sub.ch, nil
}

// List returns all transactions for the user, newest first.
func (s *TransactionStore) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return txs, nil
}

// WriteEnrichment persists classification results for a single transaction.
// It is a partial update: only category and clean_description change, and
// repeating the same write is harmless. Last write wins on conflict.
func (s *TransactionStore) WriteEnrichment(ctx context.Context, userID, txID, category, cleanDescription string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", txID, userID).
		Updates(map[string]interface{}{
			"category":          category,
			"clean_description": cleanDescription,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	s.notify(ctx, userID)
	return nil
}

// Seed inserts the given transactions atomically. It fails with
// ALREADY_SEEDED when the user already has any transactions, so demo data
// can only land once per account.
func (s *TransactionStore) Seed(ctx context.Context, userID string, seeds []models.Transaction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrAlreadySeeded
		}

		for i := range seeds {
			seeds[i].UserID = userID
		}
		if err := tx.Create(&seeds).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, userID)
	return nil
}

// notify re-emits the user's full set to every subscriber, replacing any
// emission the subscriber has not consumed yet.
func (s *TransactionStore) notify(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.subs[userID]) == 0 {
		return
	}

	txs, err := s.List(ctx, userID)
	if err != nil {
		return
	}

	for sub := range s.subs[userID] {
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- txs:
		default:
		}
	}
}
