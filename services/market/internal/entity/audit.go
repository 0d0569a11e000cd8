package entity

import "time"

const (
	ActionPurchaseLead   = "PURCHASE_LEAD"
	ActionLeadSold       = "LEAD_SOLD"
	ActionRefundPayment  = "REFUND_PAYMENT"
	ActionCancelOrder    = "CANCEL_ORDER"
	ActionRequestPayout  = "REQUEST_PAYOUT"
	ActionApprovePayout  = "APPROVE_PAYOUT"
	ActionRejectPayout   = "REJECT_PAYOUT"
	ActionCompletePayout = "COMPLETE_PAYOUT"
	ActionRequestTopup   = "REQUEST_TOPUP"
	ActionApproveTopup   = "APPROVE_TOPUP"
	ActionRejectTopup    = "REJECT_TOPUP"
	ActionUpdateLead     = "ADMIN_UPDATE_LEAD_STATUS"
)

type AuditLog struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Action    string                 `json:"action"`
	Entity    string                 `json:"entity"`
	EntityID  string                 `json:"entity_id"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditFilter struct {
	Entity   string
	EntityID string
	UserID   string
	Limit    int
	Offset   int
}

func (f *AuditFilter) Normalize() {
	lf := ListFilter{Limit: f.Limit, Offset: f.Offset}
	lf.Normalize()
	f.Limit, f.Offset = lf.Limit, lf.Offset
}
