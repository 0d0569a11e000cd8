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
	opRequestTopup = "request_topup"
	opApproveTopup = "approve_topup"
	opRejectTopup  = "reject_topup"
)

type TopupUseCase interface {
	RequestTopup(ctx context.Context, userID string, amount decimal.Decimal) (*entity.Topup, error)
	ApproveTopup(ctx context.Context, topupID, adminID string) (*entity.Topup, error)
	RejectTopup(ctx context.Context, topupID, adminID, reason string) (*entity.Topup, error)
	GetTopup(ctx context.Context, topupID, userID string, role entity.UserRole) (*entity.Topup, error)
	ListMyTopups(ctx context.Context, userID string, limit, offset int) ([]*entity.Topup, error)
	ListTopups(ctx context.Context, filter entity.ListFilter) ([]*entity.Topup, int64, error)
}

type topupUseCase struct {
	tx        Transactor
	topupRepo persistent.TopupRepository
	userRepo  persistent.UserRepository
	book      balanceBook
	notifier
}

func NewTopupUseCase(
	tx Transactor,
	topupRepo persistent.TopupRepository,
	userRepo persistent.UserRepository,
	ledgerRepo persistent.TransactionRepository,
	audit AuditUseCase,
	events EventPublisher,
	logger *logger.Logger,
) TopupUseCase {
	return &topupUseCase{
		tx:        tx,
		topupRepo: topupRepo,
		userRepo:  userRepo,
		book:      balanceBook{users: userRepo, ledger: ledgerRepo},
		notifier:  notifier{audit: audit, events: events, logger: logger},
	}
}

func (uc *topupUseCase) RequestTopup(ctx context.Context, userID string, amount decimal.Decimal) (topup *entity.Topup, err error) {
	defer func() { metrics.RecordOperation(opRequestTopup, err) }()

	if err := entity.ValidateAmount(amount); err != nil {
		return nil, err
	}

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		pending, err := uc.topupRepo.HasPending(ctx, userID)
		if err != nil {
			return err
		}
		if pending {
			return entity.ErrDuplicatePendingRequest.Withf("you already have a pending topup request")
		}

		if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
			return err
		}

		topup = &entity.Topup{
			UserID: userID,
			Amount: amount,
			Status: entity.TopupStatusPending,
		}
		return uc.topupRepo.Create(ctx, topup)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Topup %s requested by %s for %s", topup.ID, userID, amount.StringFixed(2))
	uc.record(ctx, userID, entity.ActionRequestTopup, "topup", topup.ID, map[string]interface{}{
		"amount": amount.StringFixed(2),
	})
	uc.publish(ctx, EventTopupRequested, topup)
	return topup, nil
}

func (uc *topupUseCase) ApproveTopup(ctx context.Context, topupID, adminID string) (topup *entity.Topup, err error) {
	defer func() { metrics.RecordOperation(opApproveTopup, err) }()

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		topup, err = uc.topupRepo.GetByIDForUpdate(ctx, topupID)
		if err != nil {
			return err
		}
		if err := topup.Approve(adminID, time.Now().UTC()); err != nil {
			return err
		}

		if _, err := uc.book.credit(ctx, movement{
			userID:        topup.UserID,
			amount:        topup.Amount,
			txType:        entity.TransactionTypeTopup,
			referenceType: entity.ReferenceTopup,
			referenceID:   topup.ID,
		}); err != nil {
			return integrity(err, "topup owner", topup.UserID)
		}
		return uc.topupRepo.Update(ctx, topup)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Topup %s approved by %s", topup.ID, adminID)
	metrics.RecordAmount(opApproveTopup, amountFloat(topup.Amount))
	uc.record(ctx, adminID, entity.ActionApproveTopup, "topup", topup.ID, map[string]interface{}{
		"user_id": topup.UserID,
		"amount":  topup.Amount.StringFixed(2),
	})
	uc.publish(ctx, EventTopupApproved, topup)
	return topup, nil
}

func (uc *topupUseCase) RejectTopup(ctx context.Context, topupID, adminID, reason string) (topup *entity.Topup, err error) {
	defer func() { metrics.RecordOperation(opRejectTopup, err) }()

	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		topup, err = uc.topupRepo.GetByIDForUpdate(ctx, topupID)
		if err != nil {
			return err
		}
		if err := topup.Reject(adminID, reason, time.Now().UTC()); err != nil {
			return err
		}
		return uc.topupRepo.Update(ctx, topup)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, adminID, entity.ActionRejectTopup, "topup", topup.ID, map[string]interface{}{
		"user_id": topup.UserID,
		"reason":  topup.RejectionReason,
	})
	uc.publish(ctx, EventTopupRejected, topup)
	return topup, nil
}

func (uc *topupUseCase) GetTopup(ctx context.Context, topupID, userID string, role entity.UserRole) (*entity.Topup, error) {
	topup, err := uc.topupRepo.GetByID(ctx, topupID)
	if err != nil {
		return nil, err
	}
	if role != entity.RoleAdmin && topup.UserID != userID {
		return nil, entity.ErrForbidden.Withf("topup %s belongs to another user", topupID)
	}
	return topup, nil
}

func (uc *topupUseCase) ListMyTopups(ctx context.Context, userID string, limit, offset int) ([]*entity.Topup, error) {
	topups, err := uc.topupRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list topups for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list topups: %w", err)
	}
	return topups, nil
}

func (uc *topupUseCase) ListTopups(ctx context.Context, filter entity.ListFilter) ([]*entity.Topup, int64, error) {
	if filter.Status != "" {
		status, err := entity.ParseTopupStatus(filter.Status)
		if err != nil {
			return nil, 0, err
		}
		filter.Status = string(status)
	}

	topups, total, err := uc.topupRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list topups: %v", err)
		return nil, 0, fmt.Errorf("failed to list topups: %w", err)
	}
	return topups, total, nil
}
