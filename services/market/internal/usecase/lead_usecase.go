package usecase

import (
	"context"
	"fmt"
	"strings"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"

	"github.com/shopspring/decimal"
)

type CreateLeadInput struct {
	LeadTypeID  string
	City        string
	Price       decimal.Decimal
	Phone       string
	FullName    string
	ConsentText string
	ClientIP    string
	UserAgent   string
}

type LeadUseCase interface {
	CreateLead(ctx context.Context, marketerID string, in CreateLeadInput) (*entity.Lead, error)
	PublishLead(ctx context.Context, leadID, marketerID string) (*entity.Lead, error)
	ListPublished(ctx context.Context, filter entity.LeadFilter) (*entity.LeadPage, error)
	ListMyLeads(ctx context.Context, marketerID string) ([]*entity.Lead, error)
	GetFullInfo(ctx context.Context, leadID, viewerID string, role entity.UserRole) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, leadID, status, adminID string) (*entity.Lead, error)
}

type leadUseCase struct {
	tx           Transactor
	leadRepo     persistent.LeadRepository
	leadTypeRepo persistent.LeadTypeRepository
	consentRepo  persistent.ConsentRepository
	orderRepo    persistent.OrderRepository
	notifier
}

func NewLeadUseCase(
	tx Transactor,
	leadRepo persistent.LeadRepository,
	leadTypeRepo persistent.LeadTypeRepository,
	consentRepo persistent.ConsentRepository,
	orderRepo persistent.OrderRepository,
	audit AuditUseCase,
	logger *logger.Logger,
) LeadUseCase {
	return &leadUseCase{
		tx:           tx,
		leadRepo:     leadRepo,
		leadTypeRepo: leadTypeRepo,
		consentRepo:  consentRepo,
		orderRepo:    orderRepo,
		notifier:     notifier{audit: audit, logger: logger},
	}
}

func (uc *leadUseCase) CreateLead(ctx context.Context, marketerID string, in CreateLeadInput) (*entity.Lead, error) {
	if err := entity.ValidateAmount(in.Price); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Phone) == "" || strings.TrimSpace(in.ConsentText) == "" {
		return nil, entity.ErrInvalidInput.Withf("phone and consent text are required")
	}

	var lead *entity.Lead
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		leadType, err := uc.leadTypeRepo.GetByID(ctx, in.LeadTypeID)
		if err != nil {
			return err
		}

		consent := &entity.Consent{
			MarketerID:  marketerID,
			ConsentText: in.ConsentText,
			ClientIP:    in.ClientIP,
			UserAgent:   in.UserAgent,
		}
		if err := uc.consentRepo.Create(ctx, consent); err != nil {
			return fmt.Errorf("failed to store consent: %w", err)
		}

		lead = &entity.Lead{
			LeadTypeID: leadType.ID,
			MarketerID: marketerID,
			City:       strings.TrimSpace(in.City),
			Price:      in.Price,
			Status:     entity.LeadStatusNew,
		}
		if err := uc.leadRepo.Create(ctx, lead); err != nil {
			return fmt.Errorf("failed to create lead: %w", err)
		}

		private := &entity.LeadPrivate{
			LeadID:    lead.ID,
			Phone:     strings.TrimSpace(in.Phone),
			FullName:  strings.TrimSpace(in.FullName),
			ConsentID: consent.ID,
		}
		if err := uc.leadRepo.CreatePrivate(ctx, private); err != nil {
			return fmt.Errorf("failed to store lead contact: %w", err)
		}

		lead.LeadType = leadType
		lead.Private = private
		return nil
	})
	if err != nil {
		uc.logger.Error("Failed to create lead for %s: %v", marketerID, err)
		return nil, err
	}

	uc.logger.Info("Lead %s created by %s", lead.ID, marketerID)
	return lead, nil
}

func (uc *leadUseCase) PublishLead(ctx context.Context, leadID, marketerID string) (*entity.Lead, error) {
	var lead *entity.Lead
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		lead, err = uc.leadRepo.GetByIDForUpdate(ctx, leadID)
		if err != nil {
			return err
		}
		if lead.MarketerID != marketerID {
			return entity.ErrForbidden.Withf("lead %s belongs to another marketer", leadID)
		}
		if err := lead.Publish(); err != nil {
			return err
		}
		return uc.leadRepo.UpdateStatus(ctx, lead.ID, lead.Status)
	})
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (uc *leadUseCase) ListPublished(ctx context.Context, filter entity.LeadFilter) (*entity.LeadPage, error) {
	filter.Normalize()

	leads, total, err := uc.leadRepo.ListPublished(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list published leads: %v", err)
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	for i, l := range leads {
		leads[i] = l.PublicView()
	}

	return &entity.LeadPage{
		Data:       leads,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (uc *leadUseCase) ListMyLeads(ctx context.Context, marketerID string) ([]*entity.Lead, error) {
	leads, err := uc.leadRepo.ListByMarketer(ctx, marketerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// GetFullInfo reveals contact data to the owner, an admin, or the manager
// holding the SUCCESS order for the lead.
func (uc *leadUseCase) GetFullInfo(ctx context.Context, leadID, viewerID string, role entity.UserRole) (*entity.Lead, error) {
	lead, err := uc.leadRepo.GetWithDetails(ctx, leadID)
	if err != nil {
		return nil, err
	}

	switch {
	case role == entity.RoleAdmin:
		return lead, nil
	case role == entity.RoleMarketer && lead.MarketerID == viewerID:
		return lead, nil
	case role == entity.RoleManager:
		owns, err := uc.orderRepo.HasSuccessfulOrder(ctx, leadID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check ownership: %w", err)
		}
		if owns {
			return lead, nil
		}
	}
	return nil, entity.ErrForbidden.Withf("lead %s contact data is not available", leadID)
}

func (uc *leadUseCase) UpdateStatus(ctx context.Context, leadID, status, adminID string) (*entity.Lead, error) {
	next, err := entity.ParseLeadStatus(strings.ToUpper(strings.TrimSpace(status)))
	if err != nil {
		return nil, err
	}

	var lead *entity.Lead
	var previous entity.LeadStatus
	err = uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		lead, err = uc.leadRepo.GetByIDForUpdate(ctx, leadID)
		if err != nil {
			return err
		}
		previous = lead.Status
		if err := lead.TransitionTo(next); err != nil {
			return err
		}
		return uc.leadRepo.UpdateStatus(ctx, lead.ID, lead.Status)
	})
	if err != nil {
		return nil, err
	}

	uc.record(ctx, adminID, entity.ActionUpdateLead, "lead", lead.ID, map[string]interface{}{
		"from": string(previous),
		"to":   string(lead.Status),
	})
	return lead, nil
}
