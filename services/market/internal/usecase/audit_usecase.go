package usecase

import (
	"context"
	"fmt"

	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"
)

type AuditUseCase interface {
	// Log never fails the caller; write errors are only logged.
	Log(ctx context.Context, userID, action, entityName, entityID string, metadata map[string]interface{})
	List(ctx context.Context, filter entity.AuditFilter) ([]*entity.AuditLog, error)
}

type auditUseCase struct {
	auditRepo persistent.AuditRepository
	logger    *logger.Logger
}

func NewAuditUseCase(auditRepo persistent.AuditRepository, logger *logger.Logger) AuditUseCase {
	return &auditUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *auditUseCase) Log(ctx context.Context, userID, action, entityName, entityID string, metadata map[string]interface{}) {
	log := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Metadata: metadata,
	}
	if err := uc.auditRepo.Create(context.WithoutCancel(ctx), log); err != nil {
		uc.logger.Warn("Failed to write audit log %s for %s %s: %v", action, entityName, entityID, err)
	}
}

func (uc *auditUseCase) List(ctx context.Context, filter entity.AuditFilter) ([]*entity.AuditLog, error) {
	logs, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list audit logs: %v", err)
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
