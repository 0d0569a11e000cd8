package usecase

import (
	"context"
	"sync"
	"testing"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"
	"lead-market/services/market/internal/repo/persistent"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

func (p *recordingPublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e == eventType {
			n++
		}
	}
	return n
}

type harness struct {
	db        *gorm.DB
	tx        *persistent.TxManager
	users     persistent.UserRepository
	leads     persistent.LeadRepository
	leadTypes persistent.LeadTypeRepository
	consents  persistent.ConsentRepository
	orders    persistent.OrderRepository
	payments  persistent.PaymentRepository
	payouts   persistent.PayoutRepository
	topups    persistent.TopupRepository
	ledger    persistent.TransactionRepository
	audits    persistent.AuditRepository
	audit     AuditUseCase
	events    *recordingPublisher
	logger    *logger.Logger
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection serializes transactions; sqlite ignores FOR UPDATE.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	log := logger.NewNop()
	audits := persistent.NewAuditRepository(db)
	return &harness{
		db:        db,
		tx:        persistent.NewTxManager(db),
		users:     persistent.NewUserRepository(db),
		leads:     persistent.NewLeadRepository(db),
		leadTypes: persistent.NewLeadTypeRepository(db),
		consents:  persistent.NewConsentRepository(db),
		orders:    persistent.NewOrderRepository(db),
		payments:  persistent.NewPaymentRepository(db),
		payouts:   persistent.NewPayoutRepository(db),
		topups:    persistent.NewTopupRepository(db),
		ledger:    persistent.NewTransactionRepository(db),
		audits:    audits,
		audit:     NewAuditUseCase(audits, log),
		events:    &recordingPublisher{},
		logger:    log,
	}
}

func (h *harness) orderUseCase() OrderUseCase {
	return NewOrderUseCase(h.tx, h.orders, h.leads, h.users, h.payments, h.ledger, h.audit, h.events, h.logger)
}

func (h *harness) paymentUseCase(replay ReplayGuard) PaymentUseCase {
	cfg := PaymentConfig{
		WebhookSecret: "hook-secret",
		BaseURL:       "https://payment.example.com/pay/",
	}
	return NewPaymentUseCase(cfg, h.tx, h.payments, h.orders, h.leads, h.users, h.ledger, replay, h.audit, h.events, h.logger)
}

func (h *harness) payoutUseCase() PayoutUseCase {
	return NewPayoutUseCase(h.tx, h.payouts, h.users, h.ledger, h.audit, h.events, h.logger)
}

func (h *harness) topupUseCase() TopupUseCase {
	return NewTopupUseCase(h.tx, h.topups, h.users, h.ledger, h.audit, h.events, h.logger)
}

func (h *harness) leadUseCase() LeadUseCase {
	return NewLeadUseCase(h.tx, h.leads, h.leadTypes, h.consents, h.orders, h.audit, h.logger)
}

func (h *harness) seedUser(t *testing.T, role entity.UserRole, balance string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        uuid.New().String() + "@test.com",
		PasswordHash: "hash",
		Role:         role,
		Balance:      decimal.RequireFromString(balance),
	}
	require.NoError(t, h.users.Create(context.Background(), user))
	return user
}

func (h *harness) seedLeadType(t *testing.T, companyID string) *entity.LeadType {
	t.Helper()

	leadType := &entity.LeadType{CompanyID: companyID, Title: "Insurance", BasePrice: decimal.NewFromInt(100)}
	require.NoError(t, h.leadTypes.Create(context.Background(), leadType))
	return leadType
}

func (h *harness) seedLead(t *testing.T, marketerID string, status entity.LeadStatus, price string) *entity.Lead {
	t.Helper()
	ctx := context.Background()

	leadType := h.seedLeadType(t, marketerID)
	lead := &entity.Lead{
		LeadTypeID: leadType.ID,
		MarketerID: marketerID,
		City:       "Lisbon",
		Price:      decimal.RequireFromString(price),
		Status:     status,
	}
	require.NoError(t, h.leads.Create(ctx, lead))

	consent := &entity.Consent{MarketerID: marketerID, ConsentText: "agreed"}
	require.NoError(t, h.consents.Create(ctx, consent))
	require.NoError(t, h.leads.CreatePrivate(ctx, &entity.LeadPrivate{
		LeadID:    lead.ID,
		Phone:     "+351000000",
		FullName:  "Rui Costa",
		ConsentID: consent.ID,
	}))
	return lead
}

func (h *harness) seedOrder(t *testing.T, lead *entity.Lead, managerID string, status entity.OrderStatus) *entity.Order {
	t.Helper()

	order := &entity.Order{LeadID: lead.ID, ManagerID: managerID, Amount: lead.Price, Status: status}
	require.NoError(t, h.orders.Create(context.Background(), order))
	return order
}

func (h *harness) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()

	user, err := h.users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	return user.Balance
}

func (h *harness) leadStatus(t *testing.T, leadID string) entity.LeadStatus {
	t.Helper()

	lead, err := h.leads.GetByID(context.Background(), leadID)
	require.NoError(t, err)
	return lead.Status
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (h *harness) assertBalance(t *testing.T, userID, expected string) {
	t.Helper()

	got := h.balance(t, userID)
	require.Truef(t, dec(expected).Equal(got), "balance of %s: expected %s, got %s", userID, expected, got.String())
}
