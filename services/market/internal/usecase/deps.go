package usecase

import (
	"context"
	"time"

	"lead-market/pkg/logger"
)

// Transactor runs fn in one database transaction carried by ctx.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// ReplayGuard deduplicates deliveries from external callers.
type ReplayGuard interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Complete(ctx context.Context, key string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

const (
	EventLeadSold        = "lead.sold"
	EventOrderCancelled  = "order.cancelled"
	EventPaymentPaid     = "payment.paid"
	EventPaymentFailed   = "payment.failed"
	EventPaymentRefunded = "payment.refunded"
	EventPayoutRequested = "payout.requested"
	EventPayoutApproved  = "payout.approved"
	EventPayoutRejected  = "payout.rejected"
	EventPayoutCompleted = "payout.completed"
	EventTopupRequested  = "topup.requested"
	EventTopupApproved   = "topup.approved"
	EventTopupRejected   = "topup.rejected"
)

// notifier runs the best-effort side effects that follow a commit. Failures
// are logged and never reach the caller.
type notifier struct {
	audit  AuditUseCase
	events EventPublisher
	logger *logger.Logger
}

func (n notifier) record(ctx context.Context, userID, action, entityName, entityID string, metadata map[string]interface{}) {
	if n.audit == nil {
		return
	}
	n.audit.Log(ctx, userID, action, entityName, entityID, metadata)
}

func (n notifier) publish(ctx context.Context, eventType string, payload interface{}) {
	if n.events == nil {
		return
	}
	if err := n.events.Publish(context.WithoutCancel(ctx), eventType, payload); err != nil {
		n.logger.Warn("Failed to publish %s event: %v", eventType, err)
	}
}
