package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "PENDING"
	PayoutStatusApproved  PayoutStatus = "APPROVED"
	PayoutStatusRejected  PayoutStatus = "REJECTED"
	PayoutStatusCompleted PayoutStatus = "COMPLETED"
)

type Payout struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          PayoutStatus    `json:"status"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      string          `json:"approved_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy      string          `json:"rejected_by,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Payout) Approve(adminID string, at time.Time) error {
	if p.Status != PayoutStatusPending {
		return ErrInvalidStateTransition.Withf("cannot approve payout with status %s", p.Status)
	}
	p.Status = PayoutStatusApproved
	p.ApprovedAt = &at
	p.ApprovedBy = adminID
	return nil
}

func (p *Payout) Reject(adminID, reason string, at time.Time) error {
	if p.Status != PayoutStatusPending {
		return ErrInvalidStateTransition.Withf("cannot reject payout with status %s", p.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	p.Status = PayoutStatusRejected
	p.RejectedAt = &at
	p.RejectedBy = adminID
	p.RejectionReason = reason
	return nil
}

func (p *Payout) Complete(at time.Time) error {
	if p.Status != PayoutStatusApproved {
		return ErrInvalidStateTransition.Withf("cannot complete payout with status %s", p.Status)
	}
	p.Status = PayoutStatusCompleted
	p.CompletedAt = &at
	return nil
}

func ParsePayoutStatus(s string) (PayoutStatus, error) {
	switch st := PayoutStatus(strings.ToUpper(s)); st {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusRejected, PayoutStatusCompleted:
		return st, nil
	}
	return "", ErrInvalidStatus.Withf("invalid payout status %q", s)
}
