package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lead-market/pkg/logger"
	"lead-market/pkg/metrics"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"
)

const (
	opPurchaseLead = "purchase_lead"
	opCancelOrder  = "cancel_order"
)

type OrderUseCase interface {
	PurchaseLead(ctx context.Context, leadID, managerID string) (*entity.Order, error)
	GetOrderForManager(ctx context.Context, orderID, managerID string) (*entity.Order, error)
	ListOrdersByManager(ctx context.Context, managerID string) ([]*entity.OrderGroup, error)
	CancelOrder(ctx context.Context, orderID, adminID string) (*entity.Order, error)
}

type orderUseCase struct {
	tx          Transactor
	orderRepo   persistent.OrderRepository
	leadRepo    persistent.LeadRepository
	userRepo    persistent.UserRepository
	paymentRepo persistent.PaymentRepository
	book        balanceBook
	notifier
}

func NewOrderUseCase(
	tx Transactor,
	orderRepo persistent.OrderRepository,
	leadRepo persistent.LeadRepository,
	userRepo persistent.UserRepository,
	paymentRepo persistent.PaymentRepository,
	ledgerRepo persistent.TransactionRepository,
	audit AuditUseCase,
	events EventPublisher,
	logger *logger.Logger,
) OrderUseCase {
	return &orderUseCase{
		tx:          tx,
		orderRepo:   orderRepo,
		leadRepo:    leadRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		book:        balanceBook{users: userRepo, ledger: ledgerRepo},
		notifier:    notifier{audit: audit, events: events, logger: logger},
	}
}

func (uc *orderUseCase) PurchaseLead(ctx context.Context, leadID, managerID string) (order *entity.Order, err error) {
	defer func() { metrics.RecordOperation(opPurchaseLead, err) }()

	if err := uc.precheckPurchase(ctx, leadID, managerID); err != nil {
		return nil, err
	}

	var lead *entity.Lead
	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		lead, err = uc.leadRepo.GetByIDForUpdate(ctx, leadID)
		if err != nil {
			if errors.Is(err, entity.ErrLeadNotFound) {
				return entity.ErrLeadUnavailable
			}
			return err
		}
		if !lead.IsPurchasable() {
			return entity.ErrLeadUnavailable
		}

		sold, err := uc.orderRepo.ExistsSuccessForLead(ctx, leadID)
		if err != nil {
			return err
		}
		if sold {
			return entity.ErrAlreadyPurchased
		}

		requested, err := uc.orderRepo.ExistsForLeadAndManager(ctx, leadID, managerID)
		if err != nil {
			return err
		}
		if requested {
			return entity.ErrDuplicateRequest
		}

		order = &entity.Order{
			LeadID:    leadID,
			ManagerID: managerID,
			Amount:    lead.Price,
			Status:    entity.OrderStatusSuccess,
		}
		if err := uc.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		lead.MarkSold()
		if err := uc.leadRepo.UpdateStatus(ctx, lead.ID, lead.Status); err != nil {
			return err
		}

		if _, err := uc.book.debit(ctx, movement{
			userID:        managerID,
			amount:        lead.Price,
			txType:        entity.TransactionTypePurchase,
			referenceType: entity.ReferenceOrder,
			referenceID:   order.ID,
		}); err != nil {
			return integrity(err, "manager", managerID)
		}
		if _, err := uc.book.credit(ctx, movement{
			userID:        lead.MarketerID,
			amount:        lead.Price,
			txType:        entity.TransactionTypeSale,
			referenceType: entity.ReferenceOrder,
			referenceID:   order.ID,
		}); err != nil {
			return integrity(err, "lead owner", lead.MarketerID)
		}

		paidAt := time.Now().UTC()
		payment := &entity.Payment{
			OrderID: order.ID,
			Amount:  lead.Price,
			Status:  entity.PaymentStatusPaid,
			PaidAt:  &paidAt,
		}
		if err := uc.paymentRepo.Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		order.Lead = lead
		order.Payments = []*entity.Payment{payment}
		return nil
	})
	if err != nil {
		if entity.KindOf(err) == entity.KindIntegrity {
			uc.logger.Error("Purchase of lead %s by %s hit integrity violation: %v", leadID, managerID, err)
		}
		return nil, err
	}

	uc.logger.Info("Lead %s sold to manager %s for %s", leadID, managerID, order.Amount.StringFixed(2))
	metrics.RecordAmount(opPurchaseLead, amountFloat(order.Amount))
	uc.afterSale(ctx, order, lead)

	detailed, err := uc.orderRepo.GetWithDetails(ctx, order.ID)
	if err != nil {
		uc.logger.Warn("Failed to reload order %s: %v", order.ID, err)
		return order, nil
	}
	return detailed, nil
}

// precheckPurchase rejects obviously hopeless purchases before any lock is
// taken. Every check is repeated inside the transaction.
func (uc *orderUseCase) precheckPurchase(ctx context.Context, leadID, managerID string) error {
	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return entity.ErrLeadUnavailable
		}
		return err
	}
	if !lead.IsPurchasable() {
		return entity.ErrLeadUnavailable
	}

	manager, err := uc.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if !manager.CanAfford(lead.Price) {
		return entity.ErrInsufficientBalance
	}

	sold, err := uc.orderRepo.ExistsSuccessForLead(ctx, leadID)
	if err != nil {
		return err
	}
	if sold {
		return entity.ErrAlreadyPurchased
	}

	requested, err := uc.orderRepo.ExistsForLeadAndManager(ctx, leadID, managerID)
	if err != nil {
		return err
	}
	if requested {
		return entity.ErrDuplicateRequest
	}
	return nil
}

// afterSale emits the buyer and seller audit entries shared by purchase and
// webhook settlement.
func (n notifier) afterSale(ctx context.Context, order *entity.Order, lead *entity.Lead) {
	amount := order.Amount.StringFixed(2)
	n.record(ctx, order.ManagerID, entity.ActionPurchaseLead, "order", order.ID, map[string]interface{}{
		"lead_id": order.LeadID,
		"amount":  amount,
	})
	n.record(ctx, lead.MarketerID, entity.ActionLeadSold, "lead", lead.ID, map[string]interface{}{
		"order_id": order.ID,
		"amount":   amount,
	})
	n.publish(ctx, EventLeadSold, map[string]interface{}{
		"order_id":    order.ID,
		"lead_id":     lead.ID,
		"manager_id":  order.ManagerID,
		"marketer_id": lead.MarketerID,
		"amount":      amount,
	})
}

func (uc *orderUseCase) GetOrderForManager(ctx context.Context, orderID, managerID string) (*entity.Order, error) {
	return uc.orderRepo.GetForManager(ctx, orderID, managerID)
}

func (uc *orderUseCase) ListOrdersByManager(ctx context.Context, managerID string) ([]*entity.OrderGroup, error) {
	orders, err := uc.orderRepo.ListByManager(ctx, managerID)
	if err != nil {
		uc.logger.Error("Failed to list orders for %s: %v", managerID, err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return entity.GroupOrdersByLeadType(orders), nil
}

// CancelOrder only flips the order status. Balances and lead status are left
// as they are; refunds go through the payment.
func (uc *orderUseCase) CancelOrder(ctx context.Context, orderID, adminID string) (order *entity.Order, err error) {
	defer func() { metrics.RecordOperation(opCancelOrder, err) }()

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		return uc.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, adminID, entity.ActionCancelOrder, "order", order.ID, map[string]interface{}{
		"lead_id": order.LeadID,
	})
	uc.publish(ctx, EventOrderCancelled, map[string]interface{}{
		"order_id": order.ID,
		"lead_id":  order.LeadID,
	})
	return order, nil
}
