package models

import (
	"encoding/json"
	"fmt"

	"github.com/amount-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a spend recorded against exactly one Amount.
type Expense struct {
	DefaultModel
	Amount      Amount    `json:"-"`
	AmountID    uuid.UUID `gorm:"index"`
	Description string
	Value       decimal.Decimal `gorm:"type:DECIMAL(20,8);check:value_positive,value > 0"`
	Date        types.Date
}

// BeforeSave sanitizes the description.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = sanitizeDescription(e.Description)
	return nil
}

// BeforeCreate validates the expense against its amount.
//
// The queries run on the transaction that inserts the expense, so two
// concurrent creations cannot both pass the balance check against the
// same stale sum.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	if e.Description == "" {
		return ErrDescriptionEmpty
	}

	if !e.Value.IsPositive() {
		return ErrValueNotPositive
	}

	if e.Date.IsZero() {
		return ErrDateRequired
	}

	var amount Amount
	err := tx.First(&amount, e.AmountID).Error
	if err != nil {
		return err
	}

	// Spending before the amount's date is not possible, spending on
	// the same day is
	if e.Date.Before(amount.Date) {
		return fmt.Errorf("%w, the amount is dated %s", ErrDateBeforeAmount, amount.Date)
	}

	sum, err := amount.ExpenseSum(tx, uuid.Nil)
	if err != nil {
		return err
	}

	// Spending exactly the remaining budget is allowed, exceeding it is not
	if sum.Add(e.Value).GreaterThan(amount.Value) {
		return fmt.Errorf("%w, you can only add an expense of %s", ErrOverBudget, amount.Value.Sub(sum))
	}

	return nil
}

// BeforeUpdate re-validates every changed field against the amount the
// expense belongs to. The expense itself is excluded from the balance
// check so that revising an expense does not double-count its own
// current value.
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Expense)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("AmountID") {
		return ErrExpenseReassigned
	}

	if tx.Statement.Changed("Description") {
		sanitized := sanitizeDescription(toSave.Description)
		if sanitized == "" {
			return ErrDescriptionEmpty
		}

		tx.Statement.SetColumn("Description", sanitized)
	}

	if tx.Statement.Changed("Value") {
		if !toSave.Value.IsPositive() {
			return ErrValueNotPositive
		}

		var amount Amount
		err := tx.First(&amount, e.AmountID).Error
		if err != nil {
			return err
		}

		sum, err := amount.ExpenseSum(tx, e.ID)
		if err != nil {
			return err
		}

		if sum.Add(toSave.Value).GreaterThan(amount.Value) {
			return fmt.Errorf("%w, you can only set this expense to %s", ErrOverBudget, amount.Value.Sub(sum))
		}
	}

	if tx.Statement.Changed("Date") {
		if toSave.Date.IsZero() {
			return ErrDateRequired
		}

		var amount Amount
		err := tx.First(&amount, e.AmountID).Error
		if err != nil {
			return err
		}

		if toSave.Date.Before(amount.Date) {
			return fmt.Errorf("%w, the amount is dated %s", ErrDateBeforeAmount, amount.Date)
		}
	}

	return nil
}

// Export returns all expenses on this instance for export
func (Expense) Export() (json.RawMessage, error) {
	var expenses []Expense
	err := DB.Unscoped().Where(&Expense{}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&expenses)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
