package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeadTypeModel struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID   string          `gorm:"type:uuid;not null;index" json:"company_id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"base_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (LeadTypeModel) TableName() string {
	return "lead_types"
}

func (m *LeadTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type ConsentModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	MarketerID  string    `gorm:"type:uuid;not null;index" json:"marketer_id"`
	ConsentText string    `gorm:"type:text;not null" json:"consent_text"`
	ClientIP    string    `gorm:"type:varchar(64)" json:"client_ip"`
	UserAgent   string    `gorm:"type:varchar(512)" json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ConsentModel) TableName() string {
	return "consents"
}

func (m *ConsentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type LeadModel struct {
	ID         string          `gorm:"type:uuid;primary_key" json:"id"`
	LeadTypeID string          `gorm:"type:uuid;not null;index" json:"lead_type_id"`
	MarketerID string          `gorm:"type:uuid;not null;index" json:"marketer_id"`
	City       string          `gorm:"type:varchar(255);index" json:"city"`
	Price      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Status     string          `gorm:"type:varchar(20);not null;default:'NEW';index" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	LeadType *LeadTypeModel    `gorm:"foreignKey:LeadTypeID" json:"lead_type,omitempty"`
	Private  *LeadPrivateModel `gorm:"foreignKey:LeadID" json:"private,omitempty"`
}

func (LeadModel) TableName() string {
	return "leads"
}

func (m *LeadModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type LeadPrivateModel struct {
	LeadID    string `gorm:"type:uuid;primary_key" json:"lead_id"`
	Phone     string `gorm:"type:varchar(32);not null" json:"phone"`
	FullName  string `gorm:"type:varchar(255)" json:"full_name"`
	ConsentID string `gorm:"type:uuid;not null" json:"consent_id"`
}

func (LeadPrivateModel) TableName() string {
	return "lead_privates"
}
