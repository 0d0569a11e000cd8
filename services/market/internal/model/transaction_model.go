package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID            string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type          string          `gorm:"type:varchar(20);not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"balance_after"`
	ReferenceType string          `gorm:"type:varchar(20);not null;index:idx_transactions_reference" json:"reference_type"`
	ReferenceID   string          `gorm:"type:uuid;not null;index:idx_transactions_reference" json:"reference_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (TransactionModel) TableName() string {
	return "balance_transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type AuditLogModel struct {
	ID        string            `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string            `gorm:"type:uuid;index" json:"user_id"`
	Action    string            `gorm:"type:varchar(64);not null;index" json:"action"`
	Entity    string            `gorm:"type:varchar(32);index:idx_audit_entity" json:"entity"`
	EntityID  string            `gorm:"type:uuid;index:idx_audit_entity" json:"entity_id"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

func (a *AuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// All lists every table in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&LeadTypeModel{},
		&ConsentModel{},
		&LeadModel{},
		&LeadPrivateModel{},
		&OrderModel{},
		&PaymentModel{},
		&PayoutModel{},
		&TopupModel{},
		&TransactionModel{},
		&AuditLogModel{},
	}
}
