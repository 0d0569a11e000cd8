package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TopupStatus string

const (
	TopupStatusPending  TopupStatus = "PENDING"
	TopupStatusApproved TopupStatus = "APPROVED"
	TopupStatusRejected TopupStatus = "REJECTED"
)

type Topup struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          TopupStatus     `json:"status"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      string          `json:"approved_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy      string          `json:"rejected_by,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (t *Topup) Approve(adminID string, at time.Time) error {
	if t.Status != TopupStatusPending {
		return ErrInvalidStateTransition.Withf("cannot approve topup with status %s", t.Status)
	}
	t.Status = TopupStatusApproved
	t.ApprovedAt = &at
	t.ApprovedBy = adminID
	return nil
}

func (t *Topup) Reject(adminID, reason string, at time.Time) error {
	if t.Status != TopupStatusPending {
		return ErrInvalidStateTransition.Withf("cannot reject topup with status %s", t.Status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	t.Status = TopupStatusRejected
	t.RejectedAt = &at
	t.RejectedBy = adminID
	t.RejectionReason = reason
	return nil
}

func ParseTopupStatus(s string) (TopupStatus, error) {
	switch st := TopupStatus(strings.ToUpper(s)); st {
	case TopupStatusPending, TopupStatusApproved, TopupStatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus.Withf("invalid topup status %q", s)
}
