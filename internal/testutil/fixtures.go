package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fluxo/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an anonymous user with a unique display name.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		DisplayName: fmt.Sprintf("Test User %d", nextID()),
		Anonymous:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a pending (unenriched) transaction of the
// given type and amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:         userID,
		RawDescription: fmt.Sprintf("RAW DESCRIPTION %d", nextID()),
		Type:           txType,
		Amount:         amount,
		Date:           time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestEnrichedTransaction creates a transaction with category and
// clean description already persisted.
func CreateTestEnrichedTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amount int64, category string) *models.Transaction {
	t.Helper()

	clean := fmt.Sprintf("Merchant %d", nextID())
	tx := &models.Transaction{
		UserID:           userID,
		RawDescription:   fmt.Sprintf("RAW %s %d", category, nextID()),
		Category:         &category,
		CleanDescription: &clean,
		Type:             txType,
		Amount:           amount,
		Date:             time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test enriched transaction: %v", err)
	}
	return tx
}
