package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRole string

const (
	RoleMarketer UserRole = "MARKETER"
	RoleManager  UserRole = "MANAGER"
	RoleAdmin    UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleMarketer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User balance is only ever changed by the settlement use cases.
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         UserRole        `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (u *User) CanAfford(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}
