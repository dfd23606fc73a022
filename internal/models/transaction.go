package models

import "time"

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"
	TransactionTypeOut TransactionType = "out"
)

// Transaction represents a bank statement entry. RawDescription is the
// original statement text; Category and CleanDescription are filled in by
// the enrichment pipeline and stay nil until classification succeeds.
type Transaction struct {
	Base
	UserID           string          `gorm:"type:uuid;not null;index" json:"user_id"`
	RawDescription   string          `gorm:"not null" json:"raw_description"`
	Category         *string         `json:"category,omitempty"`
	CleanDescription *string         `json:"clean_description,omitempty"`
	Type             TransactionType `gorm:"not null" json:"type"`
	Amount           int64           `gorm:"type:bigint;not null" json:"amount"`
	Date             time.Time       `gorm:"not null" json:"date"`
}

// Enriched reports whether classification results have been persisted.
func (t *Transaction) Enriched() bool {
	return t.Category != nil && t.CleanDescription != nil
}
