package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCreated  PaymentStatus = "CREATED"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	ExternalID string          `json:"external_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Status     PaymentStatus   `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// MarkPaid reports whether the payment actually moved into PAID. A payment
// that is already PAID or REFUNDED is left untouched.
func (p *Payment) MarkPaid(at time.Time) bool {
	switch p.Status {
	case PaymentStatusCreated, PaymentStatusFailed:
		p.Status = PaymentStatusPaid
		p.PaidAt = &at
		return true
	}
	return false
}

// MarkFailed only applies to payments still waiting for the provider.
func (p *Payment) MarkFailed() bool {
	if p.Status != PaymentStatusCreated {
		return false
	}
	p.Status = PaymentStatusFailed
	return true
}

func (p *Payment) Refund() error {
	if p.Status != PaymentStatusPaid {
		return ErrInvalidRefundState.Withf("cannot refund payment with status %s", p.Status)
	}
	p.Status = PaymentStatusRefunded
	return nil
}

// PaymentIntent is a provider-facing payment plus the URL the buyer follows.
type PaymentIntent struct {
	*Payment
	PaymentURL string `json:"payment_url"`
}

type WebhookOutcome int

const (
	WebhookIgnored WebhookOutcome = iota
	WebhookPaid
	WebhookFailed
)

func ParseWebhookStatus(status string) WebhookOutcome {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "paid", "success":
		return WebhookPaid
	case "failed", "failure":
		return WebhookFailed
	}
	return WebhookIgnored
}
