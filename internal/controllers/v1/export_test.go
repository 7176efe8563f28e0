package v1_test

import (
	"encoding/json"
	"net/http"
	"time"

	v1 "github.com/amount-tracker/backend/internal/controllers/v1"
	"github.com/amount-tracker/backend/internal/models"
	"github.com/amount-tracker/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExport verifies that the export works correctly
//
// Thorough checks are only executed for the non-data fields since
// the data fields are populated by the Export() methods of the models
func (suite *TestSuiteStandard) TestExport() {
	t := suite.T()

	a := createTestAmount(t, v1.AmountEditable{})
	e := createTestExpense(t, v1.ExpenseEditable{AmountID: a.Data.ID})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(t, &recorder, &response)

	assert.Equal(t, "0.0.0", response.Version)

	// Not sure if this is a good test, if it ever fails we'll re-evaluate
	now := time.Now()
	difference := response.CreationTime.Sub(now).Seconds()
	assert.Less(t, difference, float64(1))

	// Basic tests for the data fields. Full testing is done in the respective Export() methods
	// of the models
	assert.Len(t, response.Data, len(models.Registry), "Number of models in export does not match registry")

	// CreatedAt check for amount
	var amounts []models.Amount
	require.Nil(t, json.Unmarshal(response.Data["Amount"], &amounts))
	require.Len(t, amounts, 1, "Number of amounts in export must be 1")
	assert.Equal(t, a.Data.CreatedAt, amounts[0].CreatedAt)

	// CreatedAt check for expense
	var expenses []models.Expense
	require.Nil(t, json.Unmarshal(response.Data["Expense"], &expenses))
	require.Len(t, expenses, 1, "Number of expenses in export must be 1")
	assert.Equal(t, e.Data.CreatedAt, expenses[0].CreatedAt)
}

func (suite *TestSuiteStandard) TestExportOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}
