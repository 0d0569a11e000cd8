package persistent

import (
	"context"
	"testing"

	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedUser(t *testing.T, repo UserRepository, role entity.UserRole, balance string) *entity.User {
	t.Helper()

	user := &entity.User{
		Email:        uuid.New().String() + "@test.com",
		PasswordHash: "hash",
		Role:         role,
		Balance:      decimal.RequireFromString(balance),
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func seedLead(t *testing.T, db *gorm.DB, marketerID string, status entity.LeadStatus, price string) *entity.Lead {
	t.Helper()
	ctx := context.Background()

	leadType := &entity.LeadType{CompanyID: marketerID, Title: "Mortgage", BasePrice: decimal.NewFromInt(50)}
	require.NoError(t, NewLeadTypeRepository(db).Create(ctx, leadType))

	leads := NewLeadRepository(db)
	lead := &entity.Lead{
		LeadTypeID: leadType.ID,
		MarketerID: marketerID,
		City:       "Berlin",
		Price:      decimal.RequireFromString(price),
		Status:     status,
	}
	require.NoError(t, leads.Create(ctx, lead))

	consent := &entity.Consent{MarketerID: marketerID, ConsentText: "agreed"}
	require.NoError(t, NewConsentRepository(db).Create(ctx, consent))
	require.NoError(t, leads.CreatePrivate(ctx, &entity.LeadPrivate{
		LeadID:    lead.ID,
		Phone:     "+49123456",
		FullName:  "Jane Doe",
		ConsentID: consent.ID,
	}))
	return lead
}
