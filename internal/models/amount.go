package models

import (
	"encoding/json"
	"fmt"

	"github.com/amount-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Amount represents a budget allocation that expenses are recorded against.
type Amount struct {
	DefaultModel
	Description string
	Value       decimal.Decimal `gorm:"type:DECIMAL(20,8);check:value_positive,value > 0"`
	Date        types.Date
}

// AmountStatus is the derived spending state of an Amount. It is
// recomputed on every read and never stored: deleting an expense or
// raising the value reopens a finished amount.
type AmountStatus struct {
	Finished  bool            `json:"finished" example:"false"`                     // Has the full value been spent?
	Remaining decimal.Decimal `json:"remaining" example:"120.00" swaggertype:"number"` // Value that is not yet spent
}

// BeforeSave sanitizes the description.
func (a *Amount) BeforeSave(_ *gorm.DB) error {
	a.Description = sanitizeDescription(a.Description)
	return nil
}

// BeforeCreate validates the resource before it is written.
func (a *Amount) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.Description == "" {
		return ErrDescriptionEmpty
	}

	if !a.Value.IsPositive() {
		return ErrValueNotPositive
	}

	if a.Date.IsZero() {
		return ErrDateRequired
	}

	return nil
}

// BeforeUpdate checks every changed field against the state of the
// amount's expenses. The checks run inside the transaction that writes
// the update, so the aggregates cannot go stale between check and write.
func (a *Amount) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Amount)
	if !ok {
		return nil
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

		spent, err := a.ExpenseSum(tx, uuid.Nil)
		if err != nil {
			return err
		}

		// The value may never be set below what is already committed
		if spent.GreaterThan(toSave.Value) {
			return fmt.Errorf("%w, %s is already spent", ErrBelowCommitted, spent)
		}
	}

	if tx.Statement.Changed("Date") {
		if toSave.Date.IsZero() {
			return ErrDateRequired
		}

		expenses, err := a.Expenses(tx)
		if err != nil {
			return err
		}

		for _, expense := range expenses {
			if expense.Date.Before(toSave.Date) {
				return fmt.Errorf("%w, there is an expense dated %s", ErrDateAfterExpense, expense.Date)
			}
		}
	}

	return nil
}

// AfterDelete cascades the deletion to all expenses of the amount.
//
// The cascade is explicit since soft deletion is an UPDATE on the
// amounts table and never triggers the foreign key's delete action.
func (a *Amount) AfterDelete(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		return nil
	}

	return tx.Where("amount_id = ?", a.ID).Delete(&Expense{}).Error
}

// Expenses returns all expenses recorded against the amount.
func (a Amount) Expenses(db *gorm.DB) ([]Expense, error) {
	var expenses []Expense

	err := db.Where(&Expense{AmountID: a.ID}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// ExpenseCount returns the number of expenses recorded against the amount.
func (a Amount) ExpenseCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Model(&Expense{}).Where(&Expense{AmountID: a.ID}).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ExpenseSum returns the sum of the values of all expenses recorded
// against the amount. An amount without expenses has a sum of 0.
//
// When exclude is not the Nil UUID, the expense with that ID is left
// out of the sum. This is used when an expense is updated so that its
// own current value does not count against the budget.
func (a Amount) ExpenseSum(db *gorm.DB, exclude uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	q := db.Model(&Expense{}).Where("amount_id = ?", a.ID)
	if exclude != uuid.Nil {
		q = q.Where("id != ?", exclude)
	}

	err := q.Select("SUM(value)").Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing the expenses of amount %s failed: %w", a.ID, err)
	}

	return sum.Decimal, nil
}

// Remaining returns how much of the amount's value is not yet spent.
func (a Amount) Remaining(db *gorm.DB) (decimal.Decimal, error) {
	sum, err := a.ExpenseSum(db, uuid.Nil)
	if err != nil {
		return decimal.Zero, err
	}

	return a.Value.Sub(sum), nil
}

// Status computes the spending state of the amount.
//
// An amount is finished when the remaining value is exactly zero. A
// negative remainder should be prevented by the balance checks, but is
// re-checked here and reported as not finished.
func (a Amount) Status(db *gorm.DB) (AmountStatus, error) {
	remaining, err := a.Remaining(db)
	if err != nil {
		return AmountStatus{}, err
	}

	return AmountStatus{
		Finished:  remaining.IsZero(),
		Remaining: remaining,
	}, nil
}

// Export returns all amounts on this instance for export
func (Amount) Export() (json.RawMessage, error) {
	var amounts []Amount
	err := DB.Unscoped().Where(&Amount{}).Find(&amounts).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&amounts)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
