package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"lead-market/services/market/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseLead_Success(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()
	ctx := context.Background()

	marketer := h.seedUser(t, entity.RoleMarketer, "0.00")
	manager := h.seedUser(t, entity.RoleManager, "150.00")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100.00")

	order, err := uc.PurchaseLead(ctx, lead.ID, manager.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusSuccess, order.Status)
	assert.True(t, dec("100").Equal(order.Amount))
	require.NotNil(t, order.Lead)
	assert.Equal(t, entity.LeadStatusSold, order.Lead.Status)
	require.Len(t, order.Payments, 1)
	assert.Equal(t, entity.PaymentStatusPaid, order.Payments[0].Status)
	assert.NotNil(t, order.Payments[0].PaidAt)

	h.assertBalance(t, manager.ID, "50.00")
	h.assertBalance(t, marketer.ID, "100.00")
	assert.Equal(t, entity.LeadStatusSold, h.leadStatus(t, lead.ID))

	rows, err := h.ledger.ListByReference(ctx, entity.ReferenceOrder, order.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	total := rows[0].Amount.Add(rows[1].Amount)
	assert.True(t, total.IsZero(), "ledger rows for a purchase must net to zero")

	logs, err := h.audit.List(ctx, entity.AuditFilter{EntityID: order.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionPurchaseLead, logs[0].Action)

	logs, err = h.audit.List(ctx, entity.AuditFilter{Entity: "lead", EntityID: lead.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionLeadSold, logs[0].Action)

	assert.Equal(t, 1, h.events.count(EventLeadSold))
}

func TestPurchaseLead_BalanceConservation(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()

	marketer := h.seedUser(t, entity.RoleMarketer, "12.34")
	manager := h.seedUser(t, entity.RoleManager, "99.99")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "45.67")

	before := h.balance(t, marketer.ID).Add(h.balance(t, manager.ID))
	_, err := uc.PurchaseLead(context.Background(), lead.ID, manager.ID)
	require.NoError(t, err)
	after := h.balance(t, marketer.ID).Add(h.balance(t, manager.ID))

	assert.True(t, before.Equal(after))
	h.assertBalance(t, manager.ID, "54.32")
	h.assertBalance(t, marketer.ID, "58.01")
}

func TestPurchaseLead_Rejections(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()
	ctx := context.Background()

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	poor := h.seedUser(t, entity.RoleManager, "10")
	rich := h.seedUser(t, entity.RoleManager, "1000")

	t.Run("missing lead", func(t *testing.T) {
		_, err := uc.PurchaseLead(ctx, uuid.New().String(), rich.ID)
		assert.ErrorIs(t, err, entity.ErrLeadUnavailable)
	})

	t.Run("lead not published", func(t *testing.T) {
		lead := h.seedLead(t, marketer.ID, entity.LeadStatusNew, "50")
		_, err := uc.PurchaseLead(ctx, lead.ID, rich.ID)
		assert.ErrorIs(t, err, entity.ErrLeadUnavailable)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "50")
		_, err := uc.PurchaseLead(ctx, lead.ID, poor.ID)
		assert.ErrorIs(t, err, entity.ErrInsufficientBalance)
		h.assertBalance(t, poor.ID, "10")
		assert.Equal(t, entity.LeadStatusPublished, h.leadStatus(t, lead.ID))
	})

	t.Run("unknown manager", func(t *testing.T) {
		lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "50")
		_, err := uc.PurchaseLead(ctx, lead.ID, uuid.New().String())
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})

	t.Run("sold lead", func(t *testing.T) {
		lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "50")
		_, err := uc.PurchaseLead(ctx, lead.ID, rich.ID)
		require.NoError(t, err)

		_, err = uc.PurchaseLead(ctx, lead.ID, rich.ID)
		assert.ErrorIs(t, err, entity.ErrLeadUnavailable)
	})
}

func TestPurchaseLead_AntiRetry(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	manager := h.seedUser(t, entity.RoleManager, "500")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")
	h.seedOrder(t, lead, manager.ID, entity.OrderStatusCancelled)

	_, err := uc.PurchaseLead(context.Background(), lead.ID, manager.ID)
	assert.ErrorIs(t, err, entity.ErrDuplicateRequest)
	h.assertBalance(t, manager.ID, "500")
}

func TestPurchaseLead_ExistingSuccessOrder(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	winner := h.seedUser(t, entity.RoleManager, "500")
	loser := h.seedUser(t, entity.RoleManager, "500")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")
	h.seedOrder(t, lead, winner.ID, entity.OrderStatusSuccess)

	_, err := uc.PurchaseLead(context.Background(), lead.ID, loser.ID)
	assert.ErrorIs(t, err, entity.ErrAlreadyPurchased)
}

func TestPurchaseLead_MissingLeadOwnerRollsBack(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()

	manager := h.seedUser(t, entity.RoleManager, "500")
	lead := h.seedLead(t, uuid.New().String(), entity.LeadStatusPublished, "100")

	_, err := uc.PurchaseLead(context.Background(), lead.ID, manager.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrIntegrity)
	assert.Equal(t, entity.KindIntegrity, entity.KindOf(err))

	h.assertBalance(t, manager.ID, "500")
	assert.Equal(t, entity.LeadStatusPublished, h.leadStatus(t, lead.ID))
	exists, err := h.orders.ExistsForLeadAndManager(context.Background(), lead.ID, manager.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

// The harness holds a single sqlite connection, so these purchases run one
// after another and the test covers the outcome (one winner, no double debit)
// rather than the FOR UPDATE lock. Row locking only applies on Postgres.
func TestPurchaseLead_Exclusivity(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()
	ctx := context.Background()

	const buyers = 8
	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")

	managers := make([]*entity.User, buyers)
	for i := range managers {
		managers[i] = h.seedUser(t, entity.RoleManager, "100")
	}

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i, m := range managers {
		wg.Add(1)
		go func(i int, managerID string) {
			defer wg.Done()
			_, errs[i] = uc.PurchaseLead(ctx, lead.ID, managerID)
		}(i, m.ID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t,
			errors.Is(err, entity.ErrAlreadyPurchased) || errors.Is(err, entity.ErrLeadUnavailable),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	var successOrders int64
	require.NoError(t, h.db.Table("orders").Where("lead_id = ? AND status = ?", lead.ID, "SUCCESS").Count(&successOrders).Error)
	assert.Equal(t, int64(1), successOrders)
	h.assertBalance(t, marketer.ID, "100")
}

func TestListOrdersByManager_GroupsByLeadType(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()
	ctx := context.Background()

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	manager := h.seedUser(t, entity.RoleManager, "1000")
	first := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")
	second := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "200")

	_, err := uc.PurchaseLead(ctx, first.ID, manager.ID)
	require.NoError(t, err)
	order, err := uc.PurchaseLead(ctx, second.ID, manager.ID)
	require.NoError(t, err)

	groups, err := uc.ListOrdersByManager(ctx, manager.ID)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	for _, g := range groups {
		require.Len(t, g.Orders, 1)
		assert.Equal(t, g.LeadType.ID, g.Orders[0].Lead.LeadTypeID)
	}

	got, err := uc.GetOrderForManager(ctx, order.ID, manager.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Lead.Private)
	assert.Equal(t, "+351000000", got.Lead.Private.Phone)

	other := h.seedUser(t, entity.RoleManager, "0")
	_, err = uc.GetOrderForManager(ctx, order.ID, other.ID)
	assert.ErrorIs(t, err, entity.ErrOrderNotFound)
}

func TestCancelOrder(t *testing.T) {
	h := newHarness(t)
	uc := h.orderUseCase()
	ctx := context.Background()

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	manager := h.seedUser(t, entity.RoleManager, "150")
	admin := h.seedUser(t, entity.RoleAdmin, "0")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")

	order, err := uc.PurchaseLead(ctx, lead.ID, manager.ID)
	require.NoError(t, err)

	cancelled, err := uc.CancelOrder(ctx, order.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)

	// No balance reversal on cancel.
	h.assertBalance(t, manager.ID, "50")
	h.assertBalance(t, marketer.ID, "100")
	assert.Equal(t, entity.LeadStatusSold, h.leadStatus(t, lead.ID))

	_, err = uc.CancelOrder(ctx, order.ID, admin.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidStateTransition)

	_, err = uc.CancelOrder(ctx, uuid.New().String(), admin.ID)
	assert.ErrorIs(t, err, entity.ErrOrderNotFound)
	assert.Equal(t, 1, h.events.count(EventOrderCancelled))
}
