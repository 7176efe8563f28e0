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

func (suite *TestSuiteStandard) TestAmountCreateValidation() {
	tests := []struct {
		name        string
		description string
		value       decimal.Decimal
		date        types.Date
		err         error
	}{
		{"Valid", "Rent", decimal.NewFromFloat(1000), types.NewDate(2024, 8, 5), nil},
		{"Empty description", "", decimal.NewFromFloat(1000), types.NewDate(2024, 8, 5), models.ErrDescriptionEmpty},
		{"Whitespace description", "   \t ", decimal.NewFromFloat(1000), types.NewDate(2024, 8, 5), models.ErrDescriptionEmpty},
		{"Zero value", "Rent", decimal.Zero, types.NewDate(2024, 8, 5), models.ErrValueNotPositive},
		{"Negative value", "Rent", decimal.NewFromFloat(-0.01), types.NewDate(2024, 8, 5), models.ErrValueNotPositive},
		{"Missing date", "Rent", decimal.NewFromFloat(1000), types.Date{}, models.ErrDateRequired},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			amount := models.Amount{
				Description: tt.description,
				Value:       tt.value,
				Date:        tt.date,
			}

			err := models.DB.Create(&amount).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestAmountSanitizesDescription() {
	amount := suite.createTestAmount(models.Amount{
		Description: "  Groceries   for    <b>May</b>  ",
	})

	assert.Equal(suite.T(), "Groceries for &lt;b&gt;May&lt;/b&gt;", amount.Description)
}

func (suite *TestSuiteStandard) TestAmountUpdateBelowCommitted() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(1000)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(300)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(200)})

	// Shrinking below the committed sum of 500 is not possible
	err := models.DB.Model(&amount).Updates(models.Amount{Value: decimal.NewFromFloat(499.99)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrBelowCommitted)

	// Shrinking to exactly the committed sum is
	err = models.DB.Model(&amount).Updates(models.Amount{Value: decimal.NewFromFloat(500)}).Error
	assert.NoError(suite.T(), err)
}

func (suite *TestSuiteStandard) TestAmountUpdateDate() {
	amount := suite.createTestAmount(models.Amount{
		Description: "Trip",
		Value:       decimal.NewFromFloat(500),
		Date:        types.NewDate(2025, 6, 10),
	})
	_ = suite.createTestExpense(models.Expense{
		AmountID: amount.ID,
		Value:    decimal.NewFromFloat(100),
		Date:     types.NewDate(2025, 6, 10),
	})

	// Moving the amount before all expenses is fine
	err := models.DB.Model(&amount).Updates(models.Amount{Date: types.NewDate(2025, 6, 5)}).Error
	assert.NoError(suite.T(), err)

	// Moving the amount past an existing expense is not
	err = models.DB.Model(&amount).Updates(models.Amount{Date: types.NewDate(2025, 6, 15)}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDateAfterExpense)
}

func (suite *TestSuiteStandard) TestAmountDeleteCascades() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	for i := 0; i < 3; i++ {
		_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(10)})
	}

	err := models.DB.Delete(&amount).Error
	require.NoError(suite.T(), err)

	err = models.DB.First(&models.Amount{}, amount.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	var count int64
	err = models.DB.Model(&models.Expense{}).Where("amount_id = ?", amount.ID).Count(&count).Error
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count, "deleting an amount must delete all of its expenses")
}

func (suite *TestSuiteStandard) TestAmountExpenseSum() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(1000)})

	sum, err := amount.ExpenseSum(models.DB, uuid.Nil)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), sum.IsZero(), "sum without expenses is %s, should be 0", sum)

	first := suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(300)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(200)})

	sum, err = amount.ExpenseSum(models.DB, uuid.Nil)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(500)), "sum is %s, should be 500", sum)

	// Excluding an expense leaves the others in the sum
	sum, err = amount.ExpenseSum(models.DB, first.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(200)), "sum is %s, should be 200", sum)
}

func (suite *TestSuiteStandard) TestAmountExpenseCount() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	other := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(100)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(10)})
	_ = suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(10)})
	_ = suite.createTestExpense(models.Expense{AmountID: other.ID, Value: decimal.NewFromFloat(10)})

	count, err := amount.ExpenseCount(models.DB)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), count)
}

func (suite *TestSuiteStandard) TestAmountStatus() {
	amount := suite.createTestAmount(models.Amount{Value: decimal.NewFromFloat(1000)})

	status, err := amount.Status(models.DB)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), status.Finished)
	assert.True(suite.T(), status.Remaining.Equal(decimal.NewFromFloat(1000)))

	expense := suite.createTestExpense(models.Expense{AmountID: amount.ID, Value: decimal.NewFromFloat(1000)})

	status, err = amount.Status(models.DB)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), status.Finished, "an amount that is spent exactly is finished")
	assert.True(suite.T(), status.Remaining.IsZero())

	// Deleting an expense reopens the amount
	err = models.DB.Delete(&expense).Error
	require.NoError(suite.T(), err)

	status, err = amount.Status(models.DB)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), status.Finished)
	assert.True(suite.T(), status.Remaining.Equal(decimal.NewFromFloat(1000)))
}

func (suite *TestSuiteStandard) TestAmountExport() {
	t := suite.T()

	for i := 0; i < 2; i++ {
		_ = suite.createTestAmount(models.Amount{})
	}

	raw, err := models.Amount{}.Export()
	if err != nil {
		require.Fail(t, "amount export failed", err)
	}

	var amounts []models.Amount
	err = json.Unmarshal(raw, &amounts)
	if err != nil {
		require.Fail(t, "JSON could not be unmarshaled", err)
	}

	require.Len(t, amounts, 2, "Number of amounts in export is wrong")
}
