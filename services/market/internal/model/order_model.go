package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderModel carries the exclusivity backstops: one order per (lead, manager)
// and one SUCCESS order per lead.
type OrderModel struct {
	ID        string          `gorm:"type:uuid;primary_key" json:"id"`
	LeadID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_orders_lead_manager;index:idx_orders_lead_success,unique,where:status = 'SUCCESS'" json:"lead_id"`
	ManagerID string          `gorm:"type:uuid;not null;uniqueIndex:idx_orders_lead_manager;index" json:"manager_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status    string          `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Lead     *LeadModel     `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Payments []PaymentModel `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type PaymentModel struct {
	ID         string          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ExternalID *string         `gorm:"type:varchar(64);uniqueIndex" json:"external_id,omitempty"`
	Amount     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Status     string          `gorm:"type:varchar(20);not null" json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
