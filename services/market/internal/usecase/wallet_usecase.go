package usecase

import (
	"context"
	"fmt"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"
)

const maxTransactionsPage = 100

type WalletUseCase interface {
	GetWallet(ctx context.Context, userID string) (*entity.Wallet, error)
	GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error)
}

type walletUseCase struct {
	userRepo   persistent.UserRepository
	ledgerRepo persistent.TransactionRepository
	logger     *logger.Logger
}

func NewWalletUseCase(userRepo persistent.UserRepository, ledgerRepo persistent.TransactionRepository, logger *logger.Logger) WalletUseCase {
	return &walletUseCase{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

func (uc *walletUseCase) GetWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to get wallet: %v", err)
		return nil, err
	}
	return &entity.Wallet{UserID: user.ID, Balance: user.Balance}, nil
}

func (uc *walletUseCase) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	if limit <= 0 || limit > maxTransactionsPage {
		limit = maxTransactionsPage
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := uc.ledgerRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to get transactions: %v", err)
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}
