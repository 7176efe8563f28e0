package models_test

import (
	"encoding/json"
	"testing"

	"github.com/amount-tracker/backend/internal/models"
	"github.com/amount-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestExpenseCreateMissingAmount() {
	expense := models.Expense{
		AmountID:    uuid.New(),
		Description: "No amount for this one",
		Value:       decimal.NewFromFloat(10),
		Date:        types.NewDate(2024, 8, 5),
	}

	err := models.DB.Create(&expense).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestExpenseCreateValidation() {
	amount := suite.createTestAmount(models.Amount{
		Value: decimal.NewFromFloat(100),
		Date:  types.NewDate(2024, 8, 5),
	})

	tests := []struct {
		name        string
		description string
		value       decimal.Decimal
		date        types.Date
		err         error
	}{
		{"Valid", "Coffee", decimal.NewFromFloat(3.50), types.NewDate(2024, 8, 5), nil},
		{"Empty description", " ", decimal.NewFromFloat(3.50), types.NewDate(2024, 8, 5), models.ErrDescriptionEmpty},
		{"Zero value", "Coffee", decimal.Zero, types.NewDate(2024, 8, 5), models.ErrValueNotPositive},
		{"Negative value", "Coffee", decimal.NewFromFloat(-1), types.NewDate(2024, 8, 5), models.ErrValueNotPositive},
		{"Missing date", "Coffee", decimal.NewFromFloat(3.50), types.Date{}, models.ErrDateRequired},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expense := models.Expense{
				AmountID:    amount.ID,
				Description: tt.description,
				Value:       tt.value,
				Date:        tt.date,
			}

			err := models.DB.Create(&expense).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseDateOrdering() {
	amount := suite.createTestAmount(models.Amount{
		Value: decimal.NewFromFloat(100),
		Date:  types.NewDate(2025, 6, 10),
	})

	tests := []struct {
		name string
		date types.Date
		err  error
	}{
		{"Day before the amount", types.NewDate(2025, 6, 9), models.ErrDateBeforeAmount},
		{"Same day as the amount", types.NewDate(2025, 6, 10), nil},
		{"Day after the amount", types.NewDate(2025, 6, 11), nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expense := models.Expense{
				AmountID:    amount.ID,
				Description: "Ticket",
				Value:       decimal.NewFromFloat(1),
				Date:        tt.date,
			}

			err := models.DB.Create(&expense).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseBalance() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(60)})

	// One cent over the remaining budget is denied
	over := models.Expense{
		AmountID:    amount.ID,
		Description: "Too much",
		Value:       decimal.NewFromFloat(40.01),
		Date:        amount.Date,
	}
	err := models.DB.Create(&over).Error
	assert.ErrorIs(suite.T(), err, models.ErrOverBudget)

	// Spending exactly the remaining budget is allowed
	exact := models.Expense{
		AmountID:    amount.ID,
		Description: "The rest",
		Value:       decimal.NewFromFloat(40),
		Date:        amount.Date,
	}
	err = models.DB.Create(&exact).Error
	require.NoError(suite.T(), err)

	// A finished amount has no legal spend left
	cent := models.Expense{
		AmountID:    amount.ID,
		Description: "One more cent",
		Value:       decimal.NewFromFloat(0.01),
		Date:        amount.Date,
	}
	err = models.DB.Create(&cent).Error
	assert.ErrorIs(suite.T(), err, models.ErrOverBudget)
}

func (suite *TestSuiteStandard) TestExpenseUpdateSelfNoConflict() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	expense := suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(100)})

	// Setting an expense to its own current value must never be denied,
	// even when the amount is fully spent
	err := models.DB.Model(&expense).Updates(models.Expense{Value: decimal.NewFromFloat(100), Description: "updated"}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestExpenseUpdateBalance() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(60)})
	expense := suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(30)})

	// 60 from the other expense + 40.01 exceeds 100
	err := models.DB.Model(&expense).Updates(models.Expense{Value: decimal.NewFromFloat(40.01)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrOverBudget)

	// 60 + 40 spends the amount exactly
	err = models.DB.Model(&expense).Updates(models.Expense{Value: decimal.NewFromFloat(40)}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestExpenseUpdateDateOrdering() {
	amount := suite.createTestAmount(models.Amount{
		Value: decimal.NewFromFloat(100),
		Date:  types.NewDate(2025, 6, 10),
	})
	expense := suite.createTestExpense(models.Expense{
		AmountID: amount.ID,
		Value:    decimal.NewFromFloat(10),
		Date:     types.NewDate(2025, 6, 12),
	})

	err := models.DB.Model(&expense).Updates(models.Expense{Date: types.NewDate(2025, 6, 9)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDateBeforeAmount)

	err = models.DB.Model(&expense).Updates(models.Expense{Date: types.NewDate(2025, 6, 10)}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestExpenseCannotBeReassigned() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	other := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	expense := suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(10)})

	err := models.DB.Model(&expense).Updates(models.Expense{AmountID: other.ID}).Error
	assert.ErrorIs(suite.T(), err, models.ErrExpenseReassigned)
}

func (suite *TestSuiteStandard) TestExpenseSanitizesDescription() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	expense := suite.createTestExpense(models.Expense{
		AmountID:    amount.ID,
		Description: " Dinner  &  drinks ",
		Value:       decimal.NewFromFloat(50),
	})

	assert.Equal(suite.T(), "Dinner &amp; drinks", expense.Description)
}

func (suite *TestSuiteStandard) TestExpenseExport() {
	t := suite.T()

	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	for i := 0; i < 2; i++ {
		_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(10)})
	}

	raw, err := models.Expense{}.Export()
	if err != nil {
		require.Fail(t, "expense export failed", err)
	}

	var expenses []models.Expense
	err = json.Unmarshal(raw, &expenses)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, expenses, 2, "Number of expenses in export is wrong")
}
