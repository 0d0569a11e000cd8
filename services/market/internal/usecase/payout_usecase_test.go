package usecase

import (
	"context"
	"testing"

	"lead-market/services/market/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPayout(t *testing.T) {
	h := newHarness(t)
	uc := h.payoutUseCase()
	ctx := context.Background()

	user := h.seedUser(t, entity.RoleMarketer, "150")

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := uc.RequestPayout(ctx, user.ID, dec("0"))
		assert.ErrorIs(t, err, entity.ErrInvalidAmount)
		_, err = uc.RequestPayout(ctx, user.ID, dec("-5"))
		assert.ErrorIs(t, err, entity.ErrInvalidAmount)
	})

	t.Run("sub-cent amount creates nothing", func(t *testing.T) {
		_, err := uc.RequestPayout(ctx, user.ID, dec("0.001"))
		assert.ErrorIs(t, err, entity.ErrInvalidAmount)

		list, err := uc.ListMyPayouts(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("insufficient balance creates nothing", func(t *testing.T) {
		_, err := uc.RequestPayout(ctx, user.ID, dec("200"))
		assert.ErrorIs(t, err, entity.ErrInsufficientBalance)

		list, err := uc.ListMyPayouts(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := uc.RequestPayout(ctx, uuid.New().String(), dec("10"))
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})

	t.Run("single pending", func(t *testing.T) {
		payout, err := uc.RequestPayout(ctx, user.ID, dec("50"))
		require.NoError(t, err)
		assert.Equal(t, entity.PayoutStatusPending, payout.Status)
		h.assertBalance(t, user.ID, "150")

		_, err = uc.RequestPayout(ctx, user.ID, dec("10"))
		assert.ErrorIs(t, err, entity.ErrDuplicatePendingRequest)
	})
}

func TestApprovePayout(t *testing.T) {
	h := newHarness(t)
	uc := h.payoutUseCase()
	ctx := context.Background()

	user := h.seedUser(t, entity.RoleMarketer, "150")
	admin := h.seedUser(t, entity.RoleAdmin, "0")

	payout, err := uc.RequestPayout(ctx, user.ID, dec("100"))
	require.NoError(t, err)

	approved, err := uc.ApprovePayout(ctx, payout.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayoutStatusApproved, approved.Status)
	assert.Equal(t, admin.ID, approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)
	h.assertBalance(t, user.ID, "50")

	_, err = uc.ApprovePayout(ctx, payout.ID, admin.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)
	assert.Contains(t, err.Error(), "APPROVED")
	h.assertBalance(t, user.ID, "50")

	rows, err := h.ledger.ListByReference(ctx, entity.ReferencePayout, payout.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, dec("-100").Equal(rows[0].Amount))

	// Approval frees the pending slot.
	_, err = uc.RequestPayout(ctx, user.ID, dec("10"))
	require.NoError(t, err)
}

func TestApprovePayout_RechecksBalance(t *testing.T) {
	h := newHarness(t)
	uc := h.payoutUseCase()
	ctx := context.Background()

	user := h.seedUser(t, entity.RoleMarketer, "150")
	admin := h.seedUser(t, entity.RoleAdmin, "0")

	payout, err := uc.RequestPayout(ctx, user.ID, dec("100"))
	require.NoError(t, err)
	require.NoError(t, h.users.UpdateBalance(ctx, user.ID, dec("40")))

	_, err = uc.ApprovePayout(ctx, payout.ID, admin.ID)
	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)

	stored, err := uc.GetPayout(ctx, payout.ID, user.ID, entity.RoleMarketer)
	require.NoError(t, err)
	assert.Equal(t, entity.PayoutStatusPending, stored.Status)
	h.assertBalance(t, user.ID, "40")
}

func TestRejectPayout(t *testing.T) {
	h := newHarness(t)
	uc := h.payoutUseCase()
	ctx := context.Background()

	user := h.seedUser(t, entity.RoleMarketer, "150")
	admin := h.seedUser(t, entity.RoleAdmin, "0")

	payout, err := uc.RequestPayout(ctx, user.ID, dec("50"))
	require.NoError(t, err)

	_, err = uc.RejectPayout(ctx, payout.ID, admin.ID, "   ")
	assert.ErrorIs(t, err, entity.ErrReasonRequired)

	rejected, err := uc.RejectPayout(ctx, payout.ID, admin.ID, "fraud")
	require.NoError(t, err)
	assert.Equal(t, entity.PayoutStatusRejected, rejected.Status)
	assert.Equal(t, "fraud", rejected.RejectionReason)
	assert.Equal(t, admin.ID, rejected.RejectedBy)
	h.assertBalance(t, user.ID, "150")

	_, err = uc.RejectPayout(ctx, payout.ID, admin.ID, "again")
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)
	_, err = uc.RejectPayout(ctx, payout.ID, admin.ID, "")
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)

	_, err = uc.ApprovePayout(ctx, payout.ID, admin.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)
	h.assertBalance(t, user.ID, "150")

	logs, err := h.audit.List(ctx, entity.AuditFilter{Entity: "payout", EntityID: payout.ID})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestCompletePayout(t *testing.T) {
	h := newHarness(t)
	uc := h.payoutUseCase()
	ctx := context.Background()

	user := h.seedUser(t, entity.RoleMarketer, "150")
	admin := h.seedUser(t, entity.RoleAdmin, "0")

	payout, err := uc.RequestPayout(ctx, user.ID, dec("50"))
	require.NoError(t, err)

	_, err = uc.CompletePayout(ctx, payout.ID, admin.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)

	_, err = uc.ApprovePayout(ctx, payout.ID, admin.ID)
	require.NoError(t, err)

	completed, err := uc.CompletePayout(ctx, payout.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PayoutStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
	h.assertBalance(t, user.ID, "100")
	assert.Equal(t, 1, h.events.count(EventPayoutCompleted))
}

func TestPayoutQueries(t *testing.T) {
	h := newHarness(t)
	uc := h.payoutUseCase()
	ctx := context.Background()

	owner := h.seedUser(t, entity.RoleMarketer, "150")
	other := h.seedUser(t, entity.RoleMarketer, "150")

	payout, err := uc.RequestPayout(ctx, owner.ID, dec("50"))
	require.NoError(t, err)
	_, err = uc.RequestPayout(ctx, other.ID, dec("20"))
	require.NoError(t, err)

	_, err = uc.GetPayout(ctx, payout.ID, other.ID, entity.RoleMarketer)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	got, err := uc.GetPayout(ctx, payout.ID, "admin", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)

	list, total, err := uc.ListPayouts(ctx, entity.ListFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = uc.ListPayouts(ctx, entity.ListFilter{UserID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, _, err = uc.ListPayouts(ctx, entity.ListFilter{Status: "LOST"})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)
}
