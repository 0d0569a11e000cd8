package usecase

import (
	"context"
	"fmt"
	"time"

	"lead-market/pkg/logger"
	"lead-market/pkg/metrics"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"

	"github.com/shopspring/decimal"
)

const (
	opRequestPayout  = "request_payout"
	opApprovePayout  = "approve_payout"
	opRejectPayout   = "reject_payout"
	opCompletePayout = "complete_payout"
)

type PayoutUseCase interface {
	RequestPayout(ctx context.Context, userID string, amount decimal.Decimal) (*entity.Payout, error)
	ApprovePayout(ctx context.Context, payoutID, adminID string) (*entity.Payout, error)
	RejectPayout(ctx context.Context, payoutID, adminID, reason string) (*entity.Payout, error)
	CompletePayout(ctx context.Context, payoutID, adminID string) (*entity.Payout, error)
	GetPayout(ctx context.Context, payoutID, userID string, role entity.UserRole) (*entity.Payout, error)
	ListMyPayouts(ctx context.Context, userID string, limit, offset int) ([]*entity.Payout, error)
	ListPayouts(ctx context.Context, filter entity.ListFilter) ([]*entity.Payout, int64, error)
}

type payoutUseCase struct {
	tx         Transactor
	payoutRepo persistent.PayoutRepository
	userRepo   persistent.UserRepository
	book       balanceBook
	notifier
}

func NewPayoutUseCase(
	tx Transactor,
	payoutRepo persistent.PayoutRepository,
	userRepo persistent.UserRepository,
	ledgerRepo persistent.TransactionRepository,
	audit AuditUseCase,
	events EventPublisher,
	logger *logger.Logger,
) PayoutUseCase {
	return &payoutUseCase{
		tx:         tx,
		payoutRepo: payoutRepo,
		userRepo:   userRepo,
		book:       balanceBook{users: userRepo, ledger: ledgerRepo},
		notifier:   notifier{audit: audit, events: events, logger: logger},
	}
}

// RequestPayout checks the balance but does not hold it. The authoritative
// check happens again at approval.
func (uc *payoutUseCase) RequestPayout(ctx context.Context, userID string, amount decimal.Decimal) (payout *entity.Payout, err error) {
	defer func() { metrics.RecordOperation(opRequestPayout, err) }()

	if err := entity.ValidateAmount(amount); err != nil {
		return nil, err
	}

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		pending, err := uc.payoutRepo.HasPending(ctx, userID)
		if err != nil {
			return err
		}
		if pending {
			return entity.ErrDuplicatePendingRequest.Withf("you already have a pending payout request")
		}

		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if !user.CanAfford(amount) {
			return entity.ErrInsufficientBalance
		}

		payout = &entity.Payout{
			UserID: userID,
			Amount: amount,
			Status: entity.PayoutStatusPending,
		}
		return uc.payoutRepo.Create(ctx, payout)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Payout %s requested by %s for %s", payout.ID, userID, amount.StringFixed(2))
	uc.record(ctx, userID, entity.ActionRequestPayout, "payout", payout.ID, map[string]interface{}{
		"amount": amount.StringFixed(2),
	})
	uc.publish(ctx, EventPayoutRequested, payout)
	return payout, nil
}

func (uc *payoutUseCase) ApprovePayout(ctx context.Context, payoutID, adminID string) (payout *entity.Payout, err error) {
	defer func() { metrics.RecordOperation(opApprovePayout, err) }()

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		payout, err = uc.payoutRepo.GetByIDForUpdate(ctx, payoutID)
		if err != nil {
			return err
		}
		if err := payout.Approve(adminID, time.Now().UTC()); err != nil {
			return err
		}

		if _, err := uc.book.debit(ctx, movement{
			userID:        payout.UserID,
			amount:        payout.Amount,
			txType:        entity.TransactionTypePayout,
			referenceType: entity.ReferencePayout,
			referenceID:   payout.ID,
		}); err != nil {
			return integrity(err, "payout owner", payout.UserID)
		}
		return uc.payoutRepo.Update(ctx, payout)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Payout %s approved by %s", payout.ID, adminID)
	metrics.RecordAmount(opApprovePayout, amountFloat(payout.Amount))
	uc.record(ctx, adminID, entity.ActionApprovePayout, "payout", payout.ID, map[string]interface{}{
		"user_id": payout.UserID,
		"amount":  payout.Amount.StringFixed(2),
	})
	uc.publish(ctx, EventPayoutApproved, payout)
	return payout, nil
}

func (uc *payoutUseCase) RejectPayout(ctx context.Context, payoutID, adminID, reason string) (payout *entity.Payout, err error) {
	defer func() { metrics.RecordOperation(opRejectPayout, err) }()

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		payout, err = uc.payoutRepo.GetByIDForUpdate(ctx, payoutID)
		if err != nil {
			return err
		}
		if err := payout.Reject(adminID, reason, time.Now().UTC()); err != nil {
			return err
		}
		return uc.payoutRepo.Update(ctx, payout)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, adminID, entity.ActionRejectPayout, "payout", payout.ID, map[string]interface{}{
		"user_id": payout.UserID,
		"reason":  payout.RejectionReason,
	})
	uc.publish(ctx, EventPayoutRejected, payout)
	return payout, nil
}

func (uc *payoutUseCase) CompletePayout(ctx context.Context, payoutID, adminID string) (payout *entity.Payout, err error) {
	defer func() { metrics.RecordOperation(opCompletePayout, err) }()

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		payout, err = uc.payoutRepo.GetByIDForUpdate(ctx, payoutID)
		if err != nil {
			return err
		}
		if err := payout.Complete(time.Now().UTC()); err != nil {
			return err
		}
		return uc.payoutRepo.Update(ctx, payout)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, adminID, entity.ActionCompletePayout, "payout", payout.ID, nil)
	uc.publish(ctx, EventPayoutCompleted, payout)
	return payout, nil
}

func (uc *payoutUseCase) GetPayout(ctx context.Context, payoutID, userID string, role entity.UserRole) (*entity.Payout, error) {
	payout, err := uc.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if role != entity.RoleAdmin && payout.UserID != userID {
		return nil, entity.ErrForbidden.Withf("payout %s belongs to another user", payoutID)
	}
	return payout, nil
}

func (uc *payoutUseCase) ListMyPayouts(ctx context.Context, userID string, limit, offset int) ([]*entity.Payout, error) {
	payouts, err := uc.payoutRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list payouts for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

func (uc *payoutUseCase) ListPayouts(ctx context.Context, filter entity.ListFilter) ([]*entity.Payout, int64, error) {
	if filter.Status != "" {
		status, err := entity.ParsePayoutStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = string(status)
	}

	payouts, total, err := uc.payoutRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list payouts: %v", err)
		return nil, 0, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, total, nil
}
