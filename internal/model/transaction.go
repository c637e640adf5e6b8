package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
// Amounts are signed: negative for debits (money leaving the account),
// positive for credits (money arriving).
type Transaction struct {
	Date         time.Time
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name
	AccountID    string
	Currency     string
	Hash         string
	Amount       float64
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Name,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// IsOutgoing reports whether the transaction is a debit leg.
func (t *Transaction) IsOutgoing() bool {
	return t.Amount < 0
}

// IsIncoming reports whether the transaction is a credit leg.
func (t *Transaction) IsIncoming() bool {
	return t.Amount > 0
}
