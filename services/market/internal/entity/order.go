package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusSuccess   OrderStatus = "SUCCESS"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID        string          `json:"id"`
	LeadID    string          `json:"lead_id"`
	ManagerID string          `json:"manager_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Lead     *Lead      `json:"lead,omitempty"`
	Payments []*Payment `json:"payments,omitempty"`
}

func (o *Order) Cancel() error {
	if o.Status == OrderStatusCancelled {
		return ErrInvalidStateTransition.Withf("order %s is already cancelled", o.ID)
	}
	o.Status = OrderStatusCancelled
	return nil
}

func (o *Order) MarkSuccess() {
	o.Status = OrderStatusSuccess
}

// OrderGroup is a manager's orders bucketed by lead type.
type OrderGroup struct {
	LeadType *LeadType `json:"lead_type"`
	Orders   []*Order  `json:"orders"`
}

// GroupOrdersByLeadType keeps the first-seen order of lead types, so callers
// passing newest-first orders get the most recently bought type first.
func GroupOrdersByLeadType(orders []*Order) []*OrderGroup {
	groups := make([]*OrderGroup, 0)
	index := make(map[string]*OrderGroup)

	for _, o := range orders {
		if o.Lead == nil {
			continue
		}
		key := o.Lead.LeadTypeID
		g, ok := index[key]
		if !ok {
			lt := o.Lead.LeadType
			if lt == nil {
				lt = &LeadType{ID: key}
			}
			g = &OrderGroup{LeadType: lt}
			index[key] = g
			groups = append(groups, g)
		}
		g.Orders = append(g.Orders, o)
	}
	return groups
}
