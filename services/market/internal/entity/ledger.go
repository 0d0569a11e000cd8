package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePurchase      TransactionType = "purchase"
	TransactionTypeSale          TransactionType = "sale"
	TransactionTypePayout        TransactionType = "payout"
	TransactionTypeTopup         TransactionType = "topup"
	TransactionTypeRefund        TransactionType = "refund"
	TransactionTypeWebhookCredit TransactionType = "webhook_credit"
)

const (
	ReferenceOrder   = "order"
	ReferencePayment = "payment"
	ReferencePayout  = "payout"
	ReferenceTopup   = "topup"
)

// Transaction is the ledger row written alongside every balance change.
// Amount is signed: debits are negative.
type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Wallet struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}
