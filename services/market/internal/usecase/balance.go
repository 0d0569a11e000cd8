package usecase

import (
	"context"
	"errors"
	"fmt"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"

	"github.com/shopspring/decimal"
)

// movement is one side of a balance change. Amount is always positive; the
// direction comes from credit or debit.
type movement struct {
	userID        string
	amount        decimal.Decimal
	txType        entity.TransactionType
	referenceType string
	referenceID   string
}

// balanceBook pairs every balance update with its ledger row. Callers must
// already be inside a transaction.
type balanceBook struct {
	users  persistent.UserRepository
	ledger persistent.TransactionRepository
}

func (b balanceBook) credit(ctx context.Context, m movement) (*entity.User, error) {
	return b.apply(ctx, m, m.amount)
}

func (b balanceBook) debit(ctx context.Context, m movement) (*entity.User, error) {
	return b.apply(ctx, m, m.amount.Neg())
}

func (b balanceBook) apply(ctx context.Context, m movement, delta decimal.Decimal) (*entity.User, error) {
	user, err := b.users.GetByIDForUpdate(ctx, m.userID)
	if err != nil {
		return nil, err
	}

	before := user.Balance
	after := before.Add(delta)
	if after.IsNegative() {
		return nil, entity.ErrInsufficientBalance.Withf("insufficient balance: have %s, need %s", before.StringFixed(2), m.amount.StringFixed(2))
	}

	if err := b.users.UpdateBalance(ctx, user.ID, after); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	transaction := &entity.Transaction{
		UserID:        user.ID,
		Type:          m.txType,
		Amount:        delta,
		BalanceBefore: before,
		BalanceAfter:  after,
		ReferenceType: m.referenceType,
		ReferenceID:   m.referenceID,
	}
	if err := b.ledger.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	user.Balance = after
	return user, nil
}

// integrity flags a user that vanished mid-transaction.
func integrity(err error, role, userID string) error {
	if errors.Is(err, entity.ErrUserNotFound) {
		return entity.ErrIntegrity.Withf("%s %s not found", role, userID)
	}
	return err
}

func amountFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
