package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fluxo/internal/errors"
	"fluxo/internal/models"
	"fluxo/internal/pagination"
	"fluxo/internal/services"
)

const testUserID = "0192aaaa-0000-7000-8000-000000000001"

// --- mock transaction service ---

type mockTransactionService struct {
	getFeedFn      func(ctx context.Context, userID string, req pagination.PageRequest, txType string) (pagination.PageResponse[services.FeedItem], error)
	seedDemoDataFn func(ctx context.Context, userID string) error
	getSummaryFn   func(ctx context.Context, userID string) (*services.Summary, error)
}

func (m *mockTransactionService) GetFeed(ctx context.Context, userID string, req pagination.PageRequest, txType string) (pagination.PageResponse[services.FeedItem], error) {
	if m.getFeedFn != nil {
		return m.getFeedFn(ctx, userID, req, txType)
	}
	return pagination.NewPageResponse([]services.FeedItem{}, 1, 20, 0), nil
}

func (m *mockTransactionService) SeedDemoData(ctx context.Context, userID string) error {
	if m.seedDemoDataFn != nil {
		return m.seedDemoDataFn(ctx, userID)
	}
	return nil
}

func (m *mockTransactionService) GetSummary(ctx context.Context, userID string) (*services.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(ctx, userID)
	}
	return &services.Summary{Balance: 300000}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/transactions", handler.GetFeed)
	auth.POST("/transactions/seed", handler.SeedDemoData)
	auth.GET("/summary", handler.GetSummary)
	return r
}

func feedItem(raw, category string, txType models.TransactionType, amount int64) services.FeedItem {
	clean := "Clean"
	tx := models.Transaction{
		RawDescription:   raw,
		Category:         &category,
		CleanDescription: &clean,
		Type:             txType,
		Amount:           amount,
		Date:             time.Now(),
	}
	return services.FeedItem{
		Transaction: tx,
		Display:     models.DisplayFor(tx.Category, tx.Type),
	}
}

func TestTransactionHandler_GetFeed(t *testing.T) {
	t.Run("returns the feed with display metadata", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getFeedFn: func(_ context.Context, userID string, req pagination.PageRequest, txType string) (pagination.PageResponse[services.FeedItem], error) {
				if userID != testUserID {
					t.Errorf("unexpected user id %q", userID)
				}
				items := []services.FeedItem{
					feedItem("PGTO *UBER DO BRASIL TEC", "Transporte", models.TransactionTypeOut, -2490),
				}
				return pagination.NewPageResponse(items, 1, 20, 1), nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		body := parseJSON(t, rec)
		data := body["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 item, got %d", len(data))
		}
		item := data[0].(map[string]interface{})
		display := item["display"].(map[string]interface{})
		if display["icon"] != "car" {
			t.Errorf("expected car icon, got %v", display["icon"])
		}
	})

	t.Run("passes the type filter through", func(t *testing.T) {
		var gotType string
		txSvc := &mockTransactionService{
			getFeedFn: func(_ context.Context, _ string, _ pagination.PageRequest, txType string) (pagination.PageResponse[services.FeedItem], error) {
				gotType = txType
				return pagination.NewPageResponse([]services.FeedItem{}, 1, 20, 0), nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions?type=out", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotType != "out" {
			t.Errorf("expected type filter out, got %q", gotType)
		}
	})

	t.Run("rejects an invalid type filter", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "GET", "/transactions?type=sideways", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_INPUT" {
			t.Errorf("expected INVALID_INPUT, got %q", code)
		}
	})

	t.Run("maps feed unavailability to 503", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getFeedFn: func(_ context.Context, _ string, _ pagination.PageRequest, _ string) (pagination.PageResponse[services.FeedItem], error) {
				return pagination.PageResponse[services.FeedItem]{}, apperrors.ErrFeedUnavailable
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/transactions", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "FEED_UNAVAILABLE" {
			t.Errorf("expected FEED_UNAVAILABLE, got %q", code)
		}
	})
}

func TestTransactionHandler_SeedDemoData(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}))

		rec := doRequest(r, "POST", "/transactions/seed", "")
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 409 when already seeded", func(t *testing.T) {
		txSvc := &mockTransactionService{
			seedDemoDataFn: func(_ context.Context, _ string) error {
				return apperrors.ErrAlreadySeeded
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "POST", "/transactions/seed", "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "ALREADY_SEEDED" {
			t.Errorf("expected ALREADY_SEEDED, got %q", code)
		}
	})
}

func TestTransactionHandler_GetSummary(t *testing.T) {
	t.Run("returns the balance and count", func(t *testing.T) {
		txSvc := &mockTransactionService{
			getSummaryFn: func(_ context.Context, _ string) (*services.Summary, error) {
				return &services.Summary{Balance: 162740, TransactionCount: 7}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc))

		rec := doRequest(r, "GET", "/summary", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := parseJSON(t, rec)
		if body["balance"].(float64) != 162740 {
			t.Errorf("expected balance 162740, got %v", body["balance"])
		}
		if body["transaction_count"].(float64) != 7 {
			t.Errorf("expected 7 transactions, got %v", body["transaction_count"])
		}
	})
}
