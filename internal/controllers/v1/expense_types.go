package v1

import (
	"fmt"

	"github.com/amount-tracker/backend/internal/models"
	"github.com/amount-tracker/backend/internal/types"
	at_uuid "github.com/amount-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters of an Expense
type ExpenseEditable struct {
	AmountID    uuid.UUID       `json:"amountId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`       // ID of the amount the expense is recorded against
	Description string          `json:"description" example:"Groceries"`                               // Description of the expense
	Value       decimal.Decimal `json:"value" example:"14.37" swaggertype:"number"`                    // Spent value, must be larger than zero
	Date        types.Date      `json:"date" example:"07-Jan-2025" swaggertype:"string" format:"date"` // Date of the expense in DD-MMM-YYYY format
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		AmountID:    editable.AmountID,
		Description: editable.Description,
		Value:       editable.Value,
		Date:        editable.Date,
	}
}

type ExpenseLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/expenses/d4e7a3ff-a61b-441c-b986-0c9797103401"` // The expense itself
	Amount string `json:"amount" example:"https://example.com/api/v1/amounts/3b1ea324-d438-4419-882a-2fc91d71772f"` // The amount the expense is recorded against
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.ContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			AmountID:    model.AmountID,
			Description: model.Description,
			Value:       model.Value,
			Date:        model.Date,
		},
		Links: ExpenseLinks{
			Self:   fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Amount: fmt.Sprintf("%s/v1/amounts/%s", url, model.AmountID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of Expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created Expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the Expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	AmountID    at_uuid.UUID `form:"amount"`                          // By the ID of the amount
	Description string       `form:"description" filterField:"false"` // By description
	Offset      uint         `form:"offset" filterField:"false"`      // The offset of the first Expense returned. Defaults to 0.
	Limit       int          `form:"limit" filterField:"false"`       // Maximum number of Expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		AmountID: f.AmountID.UUID,
	}
}
