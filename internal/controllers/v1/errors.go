package v1

import (
	"errors"
	"net/http"

	"github.com/amount-tracker/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error.
//
// Rule violations (over budget, date ordering, reassignment) are
// requests for something the ledger forbids, not malformed requests,
// so they map to 403.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError

	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrOverBudget),
		errors.Is(err, models.ErrBelowCommitted),
		errors.Is(err, models.ErrDateBeforeAmount),
		errors.Is(err, models.ErrDateAfterExpense),
		errors.Is(err, models.ErrExpenseReassigned):
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

// Cleanup errors
var errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
