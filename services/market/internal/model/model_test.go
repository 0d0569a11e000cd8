package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{Email: "manager@test.com", Role: "MANAGER"}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestOrderModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "3f0c6f2e-5a7d-4c43-9d68-0b7a3f6f9b11"
	order := &OrderModel{ID: existingID}

	err := order.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, order.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "orders", OrderModel{}.TableName())
	assert.Equal(t, "balance_topups", TopupModel{}.TableName())
	assert.Equal(t, "balance_transactions", TransactionModel{}.TableName())
	assert.Len(t, All(), 11)
}
