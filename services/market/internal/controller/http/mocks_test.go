package http

import (
	"context"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLeadUseCase struct {
	mock.Mock
}

func (m *MockLeadUseCase) CreateLead(ctx context.Context, marketerID string, in usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, marketerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadUseCase) PublishLead(ctx context.Context, leadID, marketerID string) (*entity.Lead, error) {
	args := m.Called(ctx, leadID, marketerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadUseCase) ListPublished(ctx context.Context, filter entity.LeadFilter) (*entity.LeadPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadPage), args.Error(1)
}

func (m *MockLeadUseCase) ListMyLeads(ctx context.Context, marketerID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, marketerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadUseCase) GetFullInfo(ctx context.Context, leadID, viewerID string, role entity.UserRole) (*entity.Lead, error) {
	args := m.Called(ctx, leadID, viewerID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadUseCase) UpdateStatus(ctx context.Context, leadID, status, adminID string) (*entity.Lead, error) {
	args := m.Called(ctx, leadID, status, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) PurchaseLead(ctx context.Context, leadID, managerID string) (*entity.Order, error) {
	args := m.Called(ctx, leadID, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUseCase) GetOrderForManager(ctx context.Context, orderID, managerID string) (*entity.Order, error) {
	args := m.Called(ctx, orderID, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderUseCase) ListOrdersByManager(ctx context.Context, managerID string) ([]*entity.OrderGroup, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.OrderGroup), args.Error(1)
}

func (m *MockOrderUseCase) CancelOrder(ctx context.Context, orderID, adminID string) (*entity.Order, error) {
	args := m.Called(ctx, orderID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) CreatePayment(ctx context.Context, orderID, managerID string) (*entity.PaymentIntent, error) {
	args := m.Called(ctx, orderID, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentIntent), args.Error(1)
}

func (m *MockPaymentUseCase) HandleWebhook(ctx context.Context, externalID, status, signature string) (*entity.Payment, error) {
	args := m.Called(ctx, externalID, status, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) RefundPayment(ctx context.Context, paymentID, adminID string) (*entity.Payment, error) {
	args := m.Called(ctx, paymentID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) GetPaymentsByOrder(ctx context.Context, orderID, userID string, role entity.UserRole) ([]*entity.Payment, error) {
	args := m.Called(ctx, orderID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payment), args.Error(1)
}

type MockPayoutUseCase struct {
	mock.Mock
}

func (m *MockPayoutUseCase) RequestPayout(ctx context.Context, userID string, amount decimal.Decimal) (*entity.Payout, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) ApprovePayout(ctx context.Context, payoutID, adminID string) (*entity.Payout, error) {
	args := m.Called(ctx, payoutID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) RejectPayout(ctx context.Context, payoutID, adminID, reason string) (*entity.Payout, error) {
	args := m.Called(ctx, payoutID, adminID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) CompletePayout(ctx context.Context, payoutID, adminID string) (*entity.Payout, error) {
	args := m.Called(ctx, payoutID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) GetPayout(ctx context.Context, payoutID, userID string, role entity.UserRole) (*entity.Payout, error) {
	args := m.Called(ctx, payoutID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) ListMyPayouts(ctx context.Context, userID string, limit, offset int) ([]*entity.Payout, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Payout), args.Error(1)
}

func (m *MockPayoutUseCase) ListPayouts(ctx context.Context, filter entity.ListFilter) ([]*entity.Payout, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Payout), args.Get(1).(int64), args.Error(2)
}

type MockWalletUseCase struct {
	mock.Mock
}

func (m *MockWalletUseCase) GetWallet(ctx context.Context, userID string) (*entity.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wallet), args.Error(1)
}

func (m *MockWalletUseCase) GetTransactions(ctx context.Context, userID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

var (
	_ usecase.LeadUseCase    = (*MockLeadUseCase)(nil)
	_ usecase.OrderUseCase   = (*MockOrderUseCase)(nil)
	_ usecase.PaymentUseCase = (*MockPaymentUseCase)(nil)
	_ usecase.PayoutUseCase  = (*MockPayoutUseCase)(nil)
	_ usecase.WalletUseCase  = (*MockWalletUseCase)(nil)
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// as injects the identity AuthMiddleware would have set.
func as(userID string, role entity.UserRole, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", string(role))
		h(c)
	}
}
