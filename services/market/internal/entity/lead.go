package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusPublished LeadStatus = "PUBLISHED"
	LeadStatusSold      LeadStatus = "SOLD"
)

var leadStatusRank = map[LeadStatus]int{
	LeadStatusNew:       0,
	LeadStatusPublished: 1,
	LeadStatusSold:      2,
}

func ParseLeadStatus(s string) (LeadStatus, error) {
	status := LeadStatus(s)
	if _, ok := leadStatusRank[status]; !ok {
		return "", ErrInvalidStatus.Withf("invalid lead status %q", s)
	}
	return status, nil
}

type LeadType struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Consent struct {
	ID          string    `json:"id"`
	MarketerID  string    `json:"marketer_id"`
	ConsentText string    `json:"consent_text"`
	ClientIP    string    `json:"client_ip,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeadPrivate holds contact data shown only to the owner or the buyer.
type LeadPrivate struct {
	LeadID    string `json:"lead_id"`
	Phone     string `json:"phone"`
	FullName  string `json:"full_name"`
	ConsentID string `json:"consent_id"`
}

type Lead struct {
	ID         string          `json:"id"`
	LeadTypeID string          `json:"lead_type_id"`
	MarketerID string          `json:"marketer_id"`
	City       string          `json:"city"`
	Price      decimal.Decimal `json:"price"`
	Status     LeadStatus      `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	LeadType *LeadType   `json:"lead_type,omitempty"`
	Private  *LeadPrivate `json:"private,omitempty"`
}

func (l *Lead) IsPurchasable() bool {
	return l.Status == LeadStatusPublished
}

// TransitionTo enforces NEW -> PUBLISHED -> SOLD. Re-applying the current
// status is allowed so SOLD can be forced repeatedly.
func (l *Lead) TransitionTo(status LeadStatus) error {
	next, ok := leadStatusRank[status]
	if !ok {
		return ErrInvalidStatus.Withf("invalid lead status %q", status)
	}
	if next < leadStatusRank[l.Status] {
		return ErrInvalidStateTransition.Withf("cannot move lead from %s to %s", l.Status, status)
	}
	l.Status = status
	return nil
}

func (l *Lead) Publish() error {
	if l.Status != LeadStatusNew {
		return ErrInvalidStateTransition.Withf("cannot publish lead with status %s", l.Status)
	}
	l.Status = LeadStatusPublished
	return nil
}

func (l *Lead) MarkSold() {
	l.Status = LeadStatusSold
}

// PublicView strips contact data.
func (l *Lead) PublicView() *Lead {
	cp := *l
	cp.Private = nil
	return &cp
}

type LeadFilter struct {
	City  string
	Page  int
	Limit int
}

func (f *LeadFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}

func (f LeadFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeadPage struct {
	Data       []*Lead `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}
