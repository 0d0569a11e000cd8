package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayoutModel struct {
	ID              string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID          string          `gorm:"type:uuid;not null;index;index:idx_payouts_user_pending,unique,where:status = 'PENDING'" json:"user_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status          string          `gorm:"type:varchar(20);not null;index" json:"status"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      *string         `gorm:"type:uuid" json:"approved_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy      *string         `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectionReason string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (PayoutModel) TableName() string {
	return "payouts"
}

func (m *PayoutModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type TopupModel struct {
	ID              string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID          string          `gorm:"type:uuid;not null;index;index:idx_topups_user_pending,unique,where:status = 'PENDING'" json:"user_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status          string          `gorm:"type:varchar(20);not null;index" json:"status"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy      *string         `gorm:"type:uuid" json:"approved_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectedBy      *string         `gorm:"type:uuid" json:"rejected_by,omitempty"`
	RejectionReason string          `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (TopupModel) TableName() string {
	return "balance_topups"
}

func (m *TopupModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
