package main

import (
	"context"
	"errors"
	"fmt"

	"lead-market/pkg/config"
	"lead-market/pkg/database"
	"lead-market/pkg/jwt"
	"lead-market/pkg/logger"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"
	"lead-market/services/market/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	email   string
	role    entity.UserRole
	balance int64
}

var testUsers = []seedUser{
	{"marketer@test.com", entity.RoleMarketer, 0},
	{"manager@test.com", entity.RoleManager, 1000},
	{"manager2@test.com", entity.RoleManager, 250},
	{"admin@test.com", entity.RoleAdmin, 0},
}

var testLeads = []struct {
	city  string
	price int64
	phone string
	name  string
}{
	{"Lisbon", 100, "+351910000001", "Ana Costa"},
	{"Porto", 150, "+351910000002", "Rui Silva"},
	{"Lisbon", 80, "+351910000003", "Marta Dias"},
	{"Braga", 120, "+351910000004", ""},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(context.Background(), db, jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTTL), log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, db *gorm.DB, jwtService *jwt.Service, log *logger.Logger) error {
	userRepo := persistent.NewUserRepository(db)
	leadTypeRepo := persistent.NewLeadTypeRepository(db)
	leadUseCase := usecase.NewLeadUseCase(
		persistent.NewTxManager(db),
		persistent.NewLeadRepository(db),
		leadTypeRepo,
		persistent.NewConsentRepository(db),
		persistent.NewOrderRepository(db),
		nil,
		log,
	)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	users := make(map[entity.UserRole]*entity.User)
	for _, u := range testUsers {
		user, err := userRepo.GetByEmail(ctx, u.email)
		switch {
		case err == nil:
			log.Info("User %s already exists, skipping", u.email)
		case errors.Is(err, entity.ErrUserNotFound):
			user = &entity.User{
				Email:        u.email,
				PasswordHash: string(hashedPassword),
				Role:         u.role,
				Balance:      decimal.NewFromInt(u.balance),
			}
			if err := userRepo.Create(ctx, user); err != nil {
				return fmt.Errorf("failed to create user %s: %w", u.email, err)
			}
			log.Info("Created %s user %s with balance %d", u.role, u.email, u.balance)
		default:
			return err
		}

		if _, ok := users[u.role]; !ok {
			users[u.role] = user
		}

		token, err := jwtService.GenerateToken(user.ID, string(user.Role))
		if err != nil {
			return err
		}
		fmt.Printf("%-20s %-9s %s\n", u.email, u.role, token)
	}

	leadType := &entity.LeadType{
		CompanyID:   uuid.New().String(),
		Title:       "Home insurance",
		Description: "Homeowners asking for an insurance quote",
		BasePrice:   decimal.NewFromInt(100),
	}
	if err := leadTypeRepo.Create(ctx, leadType); err != nil {
		return fmt.Errorf("failed to create lead type: %w", err)
	}

	marketer := users[entity.RoleMarketer]
	for i, l := range testLeads {
		lead, err := leadUseCase.CreateLead(ctx, marketer.ID, usecase.CreateLeadInput{
			LeadTypeID:  leadType.ID,
			City:        l.city,
			Price:       decimal.NewFromInt(l.price),
			Phone:       l.phone,
			FullName:    l.name,
			ConsentText: "I agree to be contacted about insurance offers.",
			ClientIP:    "127.0.0.1",
			UserAgent:   "seed",
		})
		if err != nil {
			return fmt.Errorf("failed to create lead %d: %w", i+1, err)
		}

		// The last lead stays NEW so publishing can be tried by hand
		if i < len(testLeads)-1 {
			if _, err := leadUseCase.PublishLead(ctx, lead.ID, marketer.ID); err != nil {
				return fmt.Errorf("failed to publish lead %d: %w", i+1, err)
			}
		}
		log.Info("Created lead %s in %s for %d", lead.ID, l.city, l.price)
	}

	return nil
}
