// Package enrichment drives the transaction enrichment pipeline. It
// subscribes to the store's change feed, classifies pending transactions
// through the remote classifier, and persists the results. All shared
// mutable pipeline state lives here, in per-user sessions.
package enrichment

import (
	"context"
	"sync"

	"fluxo/internal/classify"
	apperrors "fluxo/internal/errors"
	"fluxo/internal/logger"
	"fluxo/internal/models"

	"golang.org/x/sync/semaphore"
)

// fallbackDescLimit caps the description used when classification fails.
const fallbackDescLimit = 25

// Store is the slice of the transaction store the engine needs.
type Store interface {
	Subscribe(ctx context.Context, userID string) (<-chan []models.Transaction, error)
	WriteEnrichment(ctx context.Context, userID, txID, category, cleanDescription string) error
}

// Classifier classifies raw statement descriptions.
type Classifier interface {
	Classify(ctx context.Context, rawDescription string) (classify.Result, error)
}

// Engine owns the enrichment sessions. One session exists per active user;
// classification calls across all sessions share one concurrency bound.
type Engine struct {
	store      Store
	classifier Classifier
	sem        *semaphore.Weighted

	mu       sync.Mutex
	sessions map[string]*session
}

// session tracks the enrichment state for one user: the latest merged
// transaction set, the ids currently being classified, and the transient
// fallback results for failed classifications. Fallbacks are deliberately
// never persisted, so a failed transaction stays pending in the store and
// is retried on the next emission.
type session struct {
	userID string
	cancel context.CancelFunc

	mu        sync.Mutex
	inflight  map[string]struct{}
	fallbacks map[string]classify.Result
	latest    []models.Transaction
	err       error

	ready     chan struct{}
	readyOnce sync.Once
}

func (s *session) signalReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// NewEngine creates an enrichment engine with the given classification
// concurrency limit.
func NewEngine(store Store, classifier Classifier, concurrency int) *Engine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		store:      store,
		classifier: classifier,
		sem:        semaphore.NewWeighted(int64(concurrency)),
		sessions:   make(map[string]*session),
	}
}

// Snapshot returns the latest merged transaction set for the user, starting
// an enrichment session on first use. The merged set is the persisted state
// with the session's transient fallbacks applied on top, newest first. It
// blocks until the session has processed its first emission.
func (e *Engine) Snapshot(ctx context.Context, userID string) ([]models.Transaction, error) {
	s := e.ensureSession(userID)

	select {
	case <-s.ready:
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, ctx.Err())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFeedUnavailable, s.err)
	}

	out := make([]models.Transaction, len(s.latest))
	copy(out, s.latest)
	return out, nil
}

// EndSession terminates the user's enrichment session, if any. In-flight
// classification results are dropped rather than written.
func (e *Engine) EndSession(userID string) {
	e.mu.Lock()
	s, ok := e.sessions[userID]
	if ok {
		delete(e.sessions, userID)
	}
	e.mu.Unlock()

	if ok {
		s.cancel()
	}
}

// Stop terminates all sessions.
func (e *Engine) Stop() {
	e.mu.Lock()
	sessions := e.sessions
	e.sessions = make(map[string]*session)
	e.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
	}
}

func (e *Engine) ensureSession(userID string) *session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if s, ok := e.sessions[userID]; ok {
		return s
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		userID:    userID,
		cancel:    cancel,
		inflight:  make(map[string]struct{}),
		fallbacks: make(map[string]classify.Result),
		ready:     make(chan struct{}),
	}
	e.sessions[userID] = s

	go e.runSession(ctx, s)
	return s
}

func (e *Engine) runSession(ctx context.Context, s *session) {
	ch, err := e.store.Subscribe(ctx, s.userID)
	if err != nil {
		logger.Get().Errorw("transaction feed subscription failed",
			"user_id", s.userID,
			"error", err,
		)
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		s.signalReady()

		// Drop the broken session so the next request starts a fresh one.
		e.mu.Lock()
		if e.sessions[s.userID] == s {
			delete(e.sessions, s.userID)
		}
		e.mu.Unlock()
		s.cancel()
		return
	}

	for txs := range ch {
		e.reconcile(ctx, s, txs)
	}
}

// reconcile processes one full-set emission: refreshes the merged view and
// kicks off classification for every pending transaction not already in
// flight. The in-flight marker is set before the classification goroutine
// starts, so a rapid re-emission can never launch a duplicate call.
func (e *Engine) reconcile(ctx context.Context, s *session, txs []models.Transaction) {
	var pending []models.Transaction

	s.mu.Lock()
	merged := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		if tx.Enriched() {
			delete(s.fallbacks, tx.ID)
		} else if fb, ok := s.fallbacks[tx.ID]; ok {
			category, clean := fb.Category, fb.CleanDescription
			tx.Category = &category
			tx.CleanDescription = &clean
		}
		merged[i] = tx
	}
	s.latest = merged

	for _, tx := range txs {
		if tx.Enriched() {
			continue
		}
		if _, busy := s.inflight[tx.ID]; busy {
			continue
		}
		s.inflight[tx.ID] = struct{}{}
		pending = append(pending, tx)
	}
	s.mu.Unlock()

	s.signalReady()

	for _, tx := range pending {
		go e.enrich(ctx, s, tx)
	}
}

// enrich classifies a single transaction and persists the result. On
// failure it records a transient fallback instead: category Outros with a
// truncated raw description, visible in the merged view but never written,
// so the store naturally retries the transaction on a later emission.
func (e *Engine) enrich(ctx context.Context, s *session, tx models.Transaction) {
	defer func() {
		s.mu.Lock()
		delete(s.inflight, tx.ID)
		s.mu.Unlock()
	}()

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return
	}
	result, err := e.classifier.Classify(ctx, tx.RawDescription)
	e.sem.Release(1)

	if err != nil {
		logger.Get().Warnw("classification failed, applying session fallback",
			"transaction_id", tx.ID,
			"error", err,
		)
		fb := classify.Result{
			Category:         models.CategoryOthers,
			CleanDescription: truncateDescription(tx.RawDescription),
		}
		s.mu.Lock()
		s.fallbacks[tx.ID] = fb
		s.applyToLatestLocked(tx.ID, fb)
		s.mu.Unlock()
		return
	}

	// Session ended while the call was in flight: drop the write.
	if ctx.Err() != nil {
		return
	}

	if err := e.store.WriteEnrichment(ctx, s.userID, tx.ID, result.Category, result.CleanDescription); err != nil {
		logger.Get().Errorw("failed to persist enrichment",
			"transaction_id", tx.ID,
			"error", err,
		)
	}
}

// applyToLatestLocked overlays a fallback result onto the merged view.
// Callers must hold s.mu.
func (s *session) applyToLatestLocked(txID string, fb classify.Result) {
	for i := range s.latest {
		if s.latest[i].ID == txID {
			category, clean := fb.Category, fb.CleanDescription
			s.latest[i].Category = &category
			s.latest[i].CleanDescription = &clean
			return
		}
	}
}

func truncateDescription(raw string) string {
	r := []rune(raw)
	if len(r) > fallbackDescLimit {
		return string(r[:fallbackDescLimit])
	}
	return raw
}
