package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"lead-market/pkg/logger"
	"lead-market/pkg/metrics"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	opCreatePayment = "create_payment"
	opWebhook       = "payment_webhook"
	opRefund        = "refund_payment"

	externalIDPrefix = "payment_"
)

type PaymentConfig struct {
	WebhookSecret string
	BaseURL       string
	ReplayTTL     time.Duration
}

type PaymentUseCase interface {
	CreatePayment(ctx context.Context, orderID, managerID string) (*entity.PaymentIntent, error)
	HandleWebhook(ctx context.Context, externalID, status, signature string) (*entity.Payment, error)
	RefundPayment(ctx context.Context, paymentID, adminID string) (*entity.Payment, error)
	GetPaymentsByOrder(ctx context.Context, orderID, userID string, role entity.UserRole) ([]*entity.Payment, error)
}

type paymentUseCase struct {
	cfg         PaymentConfig
	tx          Transactor
	paymentRepo persistent.PaymentRepository
	orderRepo   persistent.OrderRepository
	leadRepo    persistent.LeadRepository
	book        balanceBook
	replay      ReplayGuard
	notifier
}

func NewPaymentUseCase(
	cfg PaymentConfig,
	tx Transactor,
	paymentRepo persistent.PaymentRepository,
	orderRepo persistent.OrderRepository,
	leadRepo persistent.LeadRepository,
	userRepo persistent.UserRepository,
	ledgerRepo persistent.TransactionRepository,
	replay ReplayGuard,
	audit AuditUseCase,
	events EventPublisher,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		cfg:         cfg,
		tx:          tx,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		leadRepo:    leadRepo,
		book:        balanceBook{users: userRepo, ledger: ledgerRepo},
		replay:      replay,
		notifier:    notifier{audit: audit, events: events, logger: logger},
	}
}

func (uc *paymentUseCase) CreatePayment(ctx context.Context, orderID, managerID string) (intent *entity.PaymentIntent, err error) {
	defer func() { metrics.RecordOperation(opCreatePayment, err) }()

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if managerID != "" && order.ManagerID != managerID {
		return nil, entity.ErrForbidden.Withf("order %s belongs to another manager", orderID)
	}

	externalID := externalIDPrefix + uuid.New().String()[:8]
	payment := &entity.Payment{
		OrderID:    order.ID,
		ExternalID: externalID,
		Amount:     order.Amount,
		Status:     entity.PaymentStatusCreated,
	}
	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		uc.logger.Error("Failed to create payment for order %s: %v", orderID, err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return &entity.PaymentIntent{
		Payment:    payment,
		PaymentURL: uc.cfg.BaseURL + externalID,
	}, nil
}

func (uc *paymentUseCase) verifySignature(signature string) bool {
	if uc.cfg.WebhookSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(uc.cfg.WebhookSecret)) == 1
}

// HandleWebhook applies a provider callback. A "paid" delivery credits the
// marketer only when the payment was not already PAID or REFUNDED, so
// replays never credit twice.
func (uc *paymentUseCase) HandleWebhook(ctx context.Context, externalID, status, signature string) (payment *entity.Payment, err error) {
	defer func() { metrics.RecordOperation(opWebhook, err) }()

	if !uc.verifySignature(signature) {
		uc.logger.Warn("Rejected webhook for %s: invalid signature", externalID)
		return nil, entity.ErrUnauthorized
	}
	if strings.TrimSpace(externalID) == "" || strings.TrimSpace(status) == "" {
		return nil, entity.ErrInvalidInput.Withf("external_id and status are required")
	}

	outcome := entity.ParseWebhookStatus(status)
	if outcome == entity.WebhookIgnored {
		return uc.paymentRepo.GetByExternalID(ctx, externalID)
	}

	claimKey := fmt.Sprintf("%s:%d", externalID, outcome)
	if uc.replay != nil {
		claimed, claimErr := uc.replay.Claim(ctx, claimKey, uc.cfg.ReplayTTL)
		switch {
		case claimErr != nil:
			uc.logger.Warn("Replay guard unavailable for %s: %v", externalID, claimErr)
		case !claimed:
			uc.logger.Info("Duplicate webhook delivery for %s ignored", externalID)
			return uc.paymentRepo.GetByExternalID(ctx, externalID)
		default:
			defer func() {
				if err != nil {
					uc.releaseClaim(ctx, claimKey)
					return
				}
				if cErr := uc.replay.Complete(context.WithoutCancel(ctx), claimKey, uc.cfg.ReplayTTL); cErr != nil {
					uc.logger.Warn("Failed to complete replay claim %s: %v", claimKey, cErr)
				}
			}()
		}
	}

	var (
		order    *entity.Order
		lead     *entity.Lead
		credited bool
		failed   bool
	)
	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = uc.paymentRepo.GetByExternalIDForUpdate(ctx, externalID)
		if err != nil {
			return err
		}

		if outcome == entity.WebhookFailed {
			if !payment.MarkFailed() {
				return nil
			}
			failed = true
			return uc.paymentRepo.Update(ctx, payment)
		}

		if !payment.MarkPaid(time.Now().UTC()) {
			return nil
		}
		if err := uc.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}

		order, lead, err = uc.settleOrder(ctx, payment)
		if err != nil {
			return err
		}
		credited = true
		return nil
	})
	if err != nil {
		if entity.KindOf(err) == entity.KindIntegrity {
			uc.logger.Error("Webhook for %s hit integrity violation: %v", externalID, err)
		}
		return nil, err
	}

	switch {
	case credited:
		uc.logger.Info("Payment %s paid, credited %s to marketer %s", payment.ID, order.Amount.StringFixed(2), lead.MarketerID)
		metrics.RecordAmount(opWebhook, amountFloat(order.Amount))
		uc.afterSale(ctx, order, lead)
		uc.publish(ctx, EventPaymentPaid, map[string]interface{}{
			"payment_id":  payment.ID,
			"external_id": externalID,
			"order_id":    payment.OrderID,
		})
	case failed:
		uc.publish(ctx, EventPaymentFailed, map[string]interface{}{
			"payment_id":  payment.ID,
			"external_id": externalID,
			"order_id":    payment.OrderID,
		})
	}
	return payment, nil
}

// settleOrder moves the order to SUCCESS, forces the lead to SOLD and credits
// the lead owner with the order amount.
func (uc *paymentUseCase) settleOrder(ctx context.Context, payment *entity.Payment) (*entity.Order, *entity.Lead, error) {
	order, err := uc.orderRepo.GetByIDForUpdate(ctx, payment.OrderID)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			return nil, nil, entity.ErrIntegrity.Withf("payment %s references missing order %s", payment.ID, payment.OrderID)
		}
		return nil, nil, err
	}
	order.MarkSuccess()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, nil, err
	}

	lead, err := uc.leadRepo.GetByIDForUpdate(ctx, order.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, nil, entity.ErrIntegrity.Withf("order %s references missing lead %s", order.ID, order.LeadID)
		}
		return nil, nil, err
	}
	if err := lead.TransitionTo(entity.LeadStatusSold); err != nil {
		return nil, nil, err
	}
	if err := uc.leadRepo.UpdateStatus(ctx, lead.ID, lead.Status); err != nil {
		return nil, nil, err
	}

	if _, err := uc.book.credit(ctx, movement{
		userID:        lead.MarketerID,
		amount:        order.Amount,
		txType:        entity.TransactionTypeWebhookCredit,
		referenceType: entity.ReferencePayment,
		referenceID:   payment.ID,
	}); err != nil {
		return nil, nil, integrity(err, "lead owner", lead.MarketerID)
	}
	return order, lead, nil
}

func (uc *paymentUseCase) releaseClaim(ctx context.Context, key string) {
	if err := uc.replay.Release(context.WithoutCancel(ctx), key); err != nil {
		uc.logger.Warn("Failed to release replay claim %s: %v", key, err)
	}
}

// RefundPayment reverses the marketer credit only. The manager is not
// re-credited and the lead stays SOLD.
func (uc *paymentUseCase) RefundPayment(ctx context.Context, paymentID, adminID string) (payment *entity.Payment, err error) {
	defer func() { metrics.RecordOperation(opRefund, err) }()

	var marketerID string
	var amountRefunded string
	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = uc.paymentRepo.GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := payment.Refund(); err != nil {
			return err
		}

		order, err := uc.orderRepo.GetByID(ctx, payment.OrderID)
		if err != nil {
			if errors.Is(err, entity.ErrOrderNotFound) {
				return entity.ErrIntegrity.Withf("payment %s references missing order %s", payment.ID, payment.OrderID)
			}
			return err
		}
		lead, err := uc.leadRepo.GetByID(ctx, order.LeadID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return entity.ErrIntegrity.Withf("order %s references missing lead %s", order.ID, order.LeadID)
			}
			return err
		}

		if _, err := uc.book.debit(ctx, movement{
			userID:        lead.MarketerID,
			amount:        order.Amount,
			txType:        entity.TransactionTypeRefund,
			referenceType: entity.ReferencePayment,
			referenceID:   payment.ID,
		}); err != nil {
			return integrity(err, "lead owner", lead.MarketerID)
		}

		marketerID = lead.MarketerID
		amountRefunded = order.Amount.StringFixed(2)
		return uc.paymentRepo.Update(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Payment %s refunded by %s", payment.ID, adminID)
	uc.record(ctx, adminID, entity.ActionRefundPayment, "payment", payment.ID, map[string]interface{}{
		"order_id":    payment.OrderID,
		"marketer_id": marketerID,
		"amount":      amountRefunded,
	})
	uc.publish(ctx, EventPaymentRefunded, map[string]interface{}{
		"payment_id":  payment.ID,
		"order_id":    payment.OrderID,
		"marketer_id": marketerID,
		"amount":      amountRefunded,
	})
	return payment, nil
}

func (uc *paymentUseCase) GetPaymentsByOrder(ctx context.Context, orderID, userID string, role entity.UserRole) ([]*entity.Payment, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if role != entity.RoleAdmin && order.ManagerID != userID {
		return nil, entity.ErrForbidden.Withf("order %s belongs to another manager", orderID)
	}

	payments, err := uc.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
