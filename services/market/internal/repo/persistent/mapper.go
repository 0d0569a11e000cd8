package persistent

import (
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"gorm.io/datatypes"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entity.UserRole(m.Role),
		Balance:      m.Balance,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:           e.ID,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		Role:         string(e.Role),
		Balance:      e.Balance,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToLeadTypeEntity(m *model.LeadTypeModel) *entity.LeadType {
	if m == nil {
		return nil
	}

	return &entity.LeadType{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		Title:       m.Title,
		Description: m.Description,
		BasePrice:   m.BasePrice,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToLeadTypeModel(e *entity.LeadType) *model.LeadTypeModel {
	if e == nil {
		return nil
	}

	return &model.LeadTypeModel{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Title:       e.Title,
		Description: e.Description,
		BasePrice:   e.BasePrice,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToConsentEntity(m *model.ConsentModel) *entity.Consent {
	if m == nil {
		return nil
	}

	return &entity.Consent{
		ID:          m.ID,
		MarketerID:  m.MarketerID,
		ConsentText: m.ConsentText,
		ClientIP:    m.ClientIP,
		UserAgent:   m.UserAgent,
		CreatedAt:   m.CreatedAt,
	}
}

func ToConsentModel(e *entity.Consent) *model.ConsentModel {
	if e == nil {
		return nil
	}

	return &model.ConsentModel{
		ID:          e.ID,
		MarketerID:  e.MarketerID,
		ConsentText: e.ConsentText,
		ClientIP:    e.ClientIP,
		UserAgent:   e.UserAgent,
		CreatedAt:   e.CreatedAt,
	}
}

func ToLeadPrivateEntity(m *model.LeadPrivateModel) *entity.LeadPrivate {
	if m == nil {
		return nil
	}

	return &entity.LeadPrivate{
		LeadID:    m.LeadID,
		Phone:     m.Phone,
		FullName:  m.FullName,
		ConsentID: m.ConsentID,
	}
}

func ToLeadPrivateModel(e *entity.LeadPrivate) *model.LeadPrivateModel {
	if e == nil {
		return nil
	}

	return &model.LeadPrivateModel{
		LeadID:    e.LeadID,
		Phone:     e.Phone,
		FullName:  e.FullName,
		ConsentID: e.ConsentID,
	}
}

func ToLeadEntity(m *model.LeadModel) *entity.Lead {
	if m == nil {
		return nil
	}

	return &entity.Lead{
		ID:         m.ID,
		LeadTypeID: m.LeadTypeID,
		MarketerID: m.MarketerID,
		City:       m.City,
		Price:      m.Price,
		Status:     entity.LeadStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		LeadType:   ToLeadTypeEntity(m.LeadType),
		Private:    ToLeadPrivateEntity(m.Private),
	}
}

// ToLeadModel never carries associations so Save cannot cascade into them.
func ToLeadModel(e *entity.Lead) *model.LeadModel {
	if e == nil {
		return nil
	}

	return &model.LeadModel{
		ID:         e.ID,
		LeadTypeID: e.LeadTypeID,
		MarketerID: e.MarketerID,
		City:       e.City,
		Price:      e.Price,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func ToPaymentEntity(m *model.PaymentModel) *entity.Payment {
	if m == nil {
		return nil
	}

	return &entity.Payment{
		ID:         m.ID,
		OrderID:    m.OrderID,
		ExternalID: fromNullable(m.ExternalID),
		Amount:     m.Amount,
		Status:     entity.PaymentStatus(m.Status),
		PaidAt:     m.PaidAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToPaymentModel(e *entity.Payment) *model.PaymentModel {
	if e == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:         e.ID,
		OrderID:    e.OrderID,
		ExternalID: nullable(e.ExternalID),
		Amount:     e.Amount,
		Status:     string(e.Status),
		PaidAt:     e.PaidAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func ToOrderEntity(m *model.OrderModel) *entity.Order {
	if m == nil {
		return nil
	}

	order := &entity.Order{
		ID:        m.ID,
		LeadID:    m.LeadID,
		ManagerID: m.ManagerID,
		Amount:    m.Amount,
		Status:    entity.OrderStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Lead:      ToLeadEntity(m.Lead),
	}
	for i := range m.Payments {
		order.Payments = append(order.Payments, ToPaymentEntity(&m.Payments[i]))
	}
	return order
}

func ToOrderModel(e *entity.Order) *model.OrderModel {
	if e == nil {
		return nil
	}

	return &model.OrderModel{
		ID:        e.ID,
		LeadID:    e.LeadID,
		ManagerID: e.ManagerID,
		Amount:    e.Amount,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToPayoutEntity(m *model.PayoutModel) *entity.Payout {
	if m == nil {
		return nil
	}

	return &entity.Payout{
		ID:              m.ID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		Status:          entity.PayoutStatus(m.Status),
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      fromNullable(m.ApprovedBy),
		RejectedAt:      m.RejectedAt,
		RejectedBy:      fromNullable(m.RejectedBy),
		RejectionReason: m.RejectionReason,
		CompletedAt:     m.CompletedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToPayoutModel(e *entity.Payout) *model.PayoutModel {
	if e == nil {
		return nil
	}

	return &model.PayoutModel{
		ID:              e.ID,
		UserID:          e.UserID,
		Amount:          e.Amount,
		Status:          string(e.Status),
		ApprovedAt:      e.ApprovedAt,
		ApprovedBy:      nullable(e.ApprovedBy),
		RejectedAt:      e.RejectedAt,
		RejectedBy:      nullable(e.RejectedBy),
		RejectionReason: e.RejectionReason,
		CompletedAt:     e.CompletedAt,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToTopupEntity(m *model.TopupModel) *entity.Topup {
	if m == nil {
		return nil
	}

	return &entity.Topup{
		ID:              m.ID,
		UserID:          m.UserID,
		Amount:          m.Amount,
		Status:          entity.TopupStatus(m.Status),
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      fromNullable(m.ApprovedBy),
		RejectedAt:      m.RejectedAt,
		RejectedBy:      fromNullable(m.RejectedBy),
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToTopupModel(e *entity.Topup) *model.TopupModel {
	if e == nil {
		return nil
	}

	return &model.TopupModel{
		ID:              e.ID,
		UserID:          e.UserID,
		Amount:          e.Amount,
		Status:          string(e.Status),
		ApprovedAt:      e.ApprovedAt,
		ApprovedBy:      nullable(e.ApprovedBy),
		RejectedAt:      e.RejectedAt,
		RejectedBy:      nullable(e.RejectedBy),
		RejectionReason: e.RejectionReason,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Type:          entity.TransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		CreatedAt:     m.CreatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:            e.ID,
		UserID:        e.UserID,
		Type:          string(e.Type),
		Amount:        e.Amount,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		CreatedAt:     e.CreatedAt,
	}
}

func ToAuditLogEntity(m *model.AuditLogModel) *entity.AuditLog {
	if m == nil {
		return nil
	}

	return &entity.AuditLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Entity:    m.Entity,
		EntityID:  m.EntityID,
		Metadata:  map[string]interface{}(m.Metadata),
		CreatedAt: m.CreatedAt,
	}
}

func ToAuditLogModel(e *entity.AuditLog) *model.AuditLogModel {
	if e == nil {
		return nil
	}

	return &model.AuditLogModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		Metadata:  datatypes.JSONMap(e.Metadata),
		CreatedAt: e.CreatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
