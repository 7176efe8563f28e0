package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors for single resources
var (
	ErrDescriptionEmpty = errors.New("the description must not be empty")
	ErrValueNotPositive = errors.New("the value must be larger than zero")
	ErrDateRequired     = errors.New("you must specify a date")
)

// Consistency rule violations between an amount and its expenses.
// All of them are returned wrapped with the corrective value.
var (
	ErrOverBudget        = errors.New("the expenses for this amount would exceed its value")
	ErrBelowCommitted    = errors.New("the value of an amount must not be lower than what its expenses already spend")
	ErrDateBeforeAmount  = errors.New("an expense must not be dated earlier than its amount")
	ErrDateAfterExpense  = errors.New("an amount must not be dated later than any of its expenses")
	ErrExpenseReassigned = errors.New("an expense cannot be moved to another amount")
)
