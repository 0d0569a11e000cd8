package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"lead-market/pkg/cache"
	"lead-market/services/market/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	h        *harness
	marketer *entity.User
	manager  *entity.User
	lead     *entity.Lead
	order    *entity.Order
	intent   *entity.PaymentIntent
}

// newWebhookFixture prepares an unsettled order with a provider payment.
func newWebhookFixture(t *testing.T, uc func(h *harness) PaymentUseCase) (*webhookFixture, PaymentUseCase) {
	t.Helper()

	h := newHarness(t)
	payments := uc(h)
	f := &webhookFixture{h: h}
	f.marketer = h.seedUser(t, entity.RoleMarketer, "0")
	f.manager = h.seedUser(t, entity.RoleManager, "0")
	f.lead = h.seedLead(t, f.marketer.ID, entity.LeadStatusPublished, "100")
	f.order = h.seedOrder(t, f.lead, f.manager.ID, entity.OrderStatusCancelled)

	intent, err := payments.CreatePayment(context.Background(), f.order.ID, f.manager.ID)
	require.NoError(t, err)
	f.intent = intent
	return f, payments
}

func withoutReplayGuard(h *harness) PaymentUseCase {
	return h.paymentUseCase(nil)
}

func TestCreatePayment(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)

	assert.Equal(t, entity.PaymentStatusCreated, f.intent.Status)
	assert.True(t, strings.HasPrefix(f.intent.ExternalID, "payment_"))
	assert.Len(t, f.intent.ExternalID, len("payment_")+8)
	assert.Equal(t, "https://payment.example.com/pay/"+f.intent.ExternalID, f.intent.PaymentURL)
	assert.True(t, f.order.Amount.Equal(f.intent.Amount))

	stranger := f.h.seedUser(t, entity.RoleManager, "0")
	_, err := uc.CreatePayment(context.Background(), f.order.ID, stranger.ID)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = uc.CreatePayment(context.Background(), uuid.New().String(), f.manager.ID)
	assert.ErrorIs(t, err, entity.ErrOrderNotFound)
}

func TestHandleWebhook_Paid(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)
	ctx := context.Background()

	payment, err := uc.HandleWebhook(ctx, f.intent.ExternalID, "paid", "hook-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
	assert.NotNil(t, payment.PaidAt)

	f.h.assertBalance(t, f.marketer.ID, "100")
	assert.Equal(t, entity.LeadStatusSold, f.h.leadStatus(t, f.lead.ID))

	order, err := f.h.orders.GetByID(ctx, f.order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusSuccess, order.Status)

	logs, err := f.h.audit.List(ctx, entity.AuditFilter{UserID: f.marketer.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionLeadSold, logs[0].Action)
	assert.Equal(t, 1, f.h.events.count(EventPaymentPaid))
}

func TestHandleWebhook_ReplayCreditsOnce(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		payment, err := uc.HandleWebhook(ctx, f.intent.ExternalID, "success", "hook-secret")
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
	}

	f.h.assertBalance(t, f.marketer.ID, "100")
	rows, err := f.h.ledger.ListByReference(ctx, entity.ReferencePayment, f.intent.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, f.h.events.count(EventPaymentPaid))
}

func TestHandleWebhook_ReplayGuardShortCircuits(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	guard := cache.NewIdempotencyStore(client, "webhook")

	f, uc := newWebhookFixture(t, func(h *harness) PaymentUseCase {
		cfg := PaymentConfig{WebhookSecret: "hook-secret", BaseURL: "https://payment.example.com/pay/", ReplayTTL: time.Minute}
		return NewPaymentUseCase(cfg, h.tx, h.payments, h.orders, h.leads, h.users, h.ledger, guard, h.audit, h.events, h.logger)
	})
	ctx := context.Background()

	_, err := uc.HandleWebhook(ctx, f.intent.ExternalID, "paid", "hook-secret")
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1)

	payment, err := uc.HandleWebhook(ctx, f.intent.ExternalID, "paid", "hook-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
	f.h.assertBalance(t, f.marketer.ID, "100")

	// Once the claim expires the database status guard still holds.
	mr.FastForward(2 * time.Minute)
	_, err = uc.HandleWebhook(ctx, f.intent.ExternalID, "paid", "hook-secret")
	require.NoError(t, err)
	f.h.assertBalance(t, f.marketer.ID, "100")
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)

	_, err := uc.HandleWebhook(context.Background(), f.intent.ExternalID, "paid", "wrong")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)

	payment, err := f.h.payments.GetByID(context.Background(), f.intent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCreated, payment.Status)
	f.h.assertBalance(t, f.marketer.ID, "0")
}

func TestHandleWebhook_EmptySecretRejectsEverything(t *testing.T) {
	h := newHarness(t)
	uc := NewPaymentUseCase(PaymentConfig{}, h.tx, h.payments, h.orders, h.leads, h.users, h.ledger, nil, h.audit, h.events, h.logger)

	_, err := uc.HandleWebhook(context.Background(), "payment_x", "paid", "")
	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestHandleWebhook_FailedAndUnknown(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)
	ctx := context.Background()

	payment, err := uc.HandleWebhook(ctx, f.intent.ExternalID, "pending", "hook-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCreated, payment.Status)

	payment, err = uc.HandleWebhook(ctx, f.intent.ExternalID, "failed", "hook-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusFailed, payment.Status)
	f.h.assertBalance(t, f.marketer.ID, "0")

	// A late success after a failure still settles once.
	payment, err = uc.HandleWebhook(ctx, f.intent.ExternalID, "paid", "hook-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
	f.h.assertBalance(t, f.marketer.ID, "100")

	payment, err = uc.HandleWebhook(ctx, f.intent.ExternalID, "failure", "hook-secret")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, payment.Status)

	_, err = uc.HandleWebhook(ctx, "payment_missing", "paid", "hook-secret")
	assert.ErrorIs(t, err, entity.ErrPaymentNotFound)
}

func TestHandleWebhook_LeadAlreadySoldToAnother(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)
	ctx := context.Background()

	rival := f.h.seedUser(t, entity.RoleManager, "500")
	_, err := f.h.orderUseCase().PurchaseLead(ctx, f.lead.ID, rival.ID)
	require.NoError(t, err)

	_, err = uc.HandleWebhook(ctx, f.intent.ExternalID, "paid", "hook-secret")
	assert.ErrorIs(t, err, entity.ErrAlreadyPurchased)

	payment, err := f.h.payments.GetByID(ctx, f.intent.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCreated, payment.Status)
	f.h.assertBalance(t, f.marketer.ID, "100")
}

func TestRefundPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	orders := h.orderUseCase()
	payments := h.paymentUseCase(nil)

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	manager := h.seedUser(t, entity.RoleManager, "150")
	admin := h.seedUser(t, entity.RoleAdmin, "0")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")

	order, err := orders.PurchaseLead(ctx, lead.ID, manager.ID)
	require.NoError(t, err)
	require.Len(t, order.Payments, 1)
	paymentID := order.Payments[0].ID

	refunded, err := payments.RefundPayment(ctx, paymentID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, refunded.Status)

	h.assertBalance(t, marketer.ID, "0")
	h.assertBalance(t, manager.ID, "50")
	assert.Equal(t, entity.LeadStatusSold, h.leadStatus(t, lead.ID))

	_, err = payments.RefundPayment(ctx, paymentID, admin.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidRefundState)
	h.assertBalance(t, marketer.ID, "0")

	_, err = payments.RefundPayment(ctx, uuid.New().String(), admin.ID)
	assert.ErrorIs(t, err, entity.ErrPaymentNotFound)

	logs, err := h.audit.List(ctx, entity.AuditFilter{Entity: "payment", EntityID: paymentID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionRefundPayment, logs[0].Action)
}

func TestRefundPayment_MarketerAlreadySpent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	marketer := h.seedUser(t, entity.RoleMarketer, "0")
	manager := h.seedUser(t, entity.RoleManager, "150")
	lead := h.seedLead(t, marketer.ID, entity.LeadStatusPublished, "100")

	order, err := h.orderUseCase().PurchaseLead(ctx, lead.ID, manager.ID)
	require.NoError(t, err)
	require.NoError(t, h.users.UpdateBalance(ctx, marketer.ID, dec("30")))

	_, err = h.paymentUseCase(nil).RefundPayment(ctx, order.Payments[0].ID, "")
	assert.ErrorIs(t, err, entity.ErrInsufficientBalance)

	payment, err := h.payments.GetByID(ctx, order.Payments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
	h.assertBalance(t, marketer.ID, "30")
}

func TestGetPaymentsByOrder(t *testing.T) {
	f, uc := newWebhookFixture(t, withoutReplayGuard)
	ctx := context.Background()

	list, err := uc.GetPaymentsByOrder(ctx, f.order.ID, f.manager.ID, entity.RoleManager)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.GetPaymentsByOrder(ctx, f.order.ID, "someone", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.GetPaymentsByOrder(ctx, f.order.ID, "someone", entity.RoleManager)
	assert.ErrorIs(t, err, entity.ErrForbidden)
}
