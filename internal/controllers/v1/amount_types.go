package v1

import (
	"fmt"

	"github.com/amount-tracker/backend/internal/models"
	"github.com/amount-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AmountEditable represents all user configurable parameters of an Amount
type AmountEditable struct {
	Description string          `json:"description" example:"Rent for January"`                       // Description of the amount
	Value       decimal.Decimal `json:"value" example:"1000.00" swaggertype:"number"`                 // Allocated value, must be larger than zero
	Date        types.Date      `json:"date" example:"01-Jan-2025" swaggertype:"string" format:"date"` // Date of the allocation in DD-MMM-YYYY format
}

func (editable AmountEditable) model() models.Amount {
	return models.Amount{
		Description: editable.Description,
		Value:       editable.Value,
		Date:        editable.Date,
	}
}

type AmountLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/amounts/3b1ea324-d438-4419-882a-2fc91d71772f"`              // The amount itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/amounts/3b1ea324-d438-4419-882a-2fc91d71772f/expenses"` // Expenses for this amount
}

type Amount struct {
	models.DefaultModel
	AmountEditable
	Links AmountLinks `json:"links"`

	// These fields are computed
	ExpenseCount int64 `json:"expenseCount" example:"3"` // Number of expenses recorded against the amount
}

func newAmount(c *gin.Context, db *gorm.DB, model models.Amount) (Amount, error) {
	url := c.GetString(string(models.ContextURL))

	count, err := model.ExpenseCount(db)
	if err != nil {
		return Amount{}, err
	}

	return Amount{
		DefaultModel: model.DefaultModel,
		AmountEditable: AmountEditable{
			Description: model.Description,
			Value:       model.Value,
			Date:        model.Date,
		},
		Links: AmountLinks{
			Self:     fmt.Sprintf("%s/v1/amounts/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/amounts/%s/expenses", url, model.ID),
		},
		ExpenseCount: count,
	}, nil
}

type AmountListResponse struct {
	Data       []Amount    `json:"data"`                                                          // List of Amounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AmountCreateResponse struct {
	Data  []AmountResponse `json:"data"`                                                          // List of the created Amounts or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AmountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AmountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AmountResponse struct {
	Data  *Amount `json:"data"`                                                          // Data for the Amount
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// AmountExpenses is the spending overview for a single Amount.
type AmountExpenses struct {
	ID         string          `json:"id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the amount
	TotalValue decimal.Decimal `json:"totalValue" example:"1000.00" swaggertype:"number"` // Allocated value of the amount
	TotalSpent decimal.Decimal `json:"totalSpent" example:"880.00" swaggertype:"number"`  // Sum of all expenses
	Remaining  decimal.Decimal `json:"remaining" example:"120.00" swaggertype:"number"`   // Value that is not yet spent
	Expenses   []Expense       `json:"expenses"`                                          // The expenses recorded against the amount
}

type AmountExpensesResponse struct {
	Data  *AmountExpenses `json:"data"`                                                          // Spending overview for the Amount
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// AmountStatus is the derived state of a single Amount.
type AmountStatus struct {
	ID          string              `json:"id" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the amount
	Description string              `json:"description" example:"Rent for January"`            // Description of the amount
	Value       decimal.Decimal     `json:"value" example:"1000.00" swaggertype:"number"`      // Allocated value of the amount
	Status      models.AmountStatus `json:"status"`                                            // Whether the amount is finished and how much remains
}

type AmountStatusListResponse struct {
	Data  []AmountStatus `json:"data"`                                                          // Status of all Amounts
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AmountQueryFilter struct {
	Description string `form:"description" filterField:"false"` // By description
	Offset      uint   `form:"offset" filterField:"false"`      // The offset of the first Amount returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`       // Maximum number of Amounts to return. Defaults to 50.
}
