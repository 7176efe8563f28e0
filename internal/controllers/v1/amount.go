package v1

import (
	"net/http"

	"github.com/amount-tracker/backend/internal/httputil"
	"github.com/amount-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

func RegisterAmountRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsAmounts)
		r.GET("", GetAmounts)
		r.POST("", CreateAmounts)
	}
	{
		r.OPTIONS("/status", OptionsAmountsStatus)
		r.GET("/status", GetAmountsStatus)
	}
	{
		r.OPTIONS("/:id", OptionsAmountDetail)
		r.GET("/:id", GetAmount)
		r.PATCH("/:id", UpdateAmount)
		r.DELETE("/:id", DeleteAmount)
	}
	{
		r.OPTIONS("/:id/expenses", OptionsAmountExpenses)
		r.GET("/:id/expenses", GetAmountExpenses)
		r.DELETE("/:id/expenses", DeleteAmountExpenses)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Amounts
// @Success		204
// @Router			/v1/amounts [options]
func OptionsAmounts(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Amounts
// @Success		204
// @Router			/v1/amounts/status [options]
func OptionsAmountsStatus(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Amounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/amounts/{id} [options]
func OptionsAmountDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Amount{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Amounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/amounts/{id}/expenses [options]
func OptionsAmountExpenses(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Amount{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create amounts
// @Description	Creates new amounts
// @Tags			Amounts
// @Produce		json
// @Success		201		{object}	AmountCreateResponse
// @Failure		400		{object}	AmountCreateResponse
// @Failure		403		{object}	AmountCreateResponse
// @Failure		500		{object}	AmountCreateResponse
// @Param			amounts	body		[]AmountEditable	true	"Amounts"
// @Router			/v1/amounts [post]
func CreateAmounts(c *gin.Context) {
	var editables []AmountEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AmountCreateResponse{}

	for _, editable := range editables {
		amount := editable.model()
		err = models.DB.Create(&amount).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// Transform for the API and append
		apiResource, err := newAmount(c, models.DB, amount)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, AmountResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// @Summary		Get amounts
// @Description	Returns a list of amounts
// @Tags			Amounts
// @Produce		json
// @Success		200	{object}	AmountListResponse
// @Failure		400	{object}	AmountListResponse
// @Failure		500	{object}	AmountListResponse
// @Router			/v1/amounts [get]
// @Param			description	query	string	false	"Filter by description"
// @Param			offset		query	uint	false	"The offset of the first amount returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of amounts to return. Defaults to 50."
func GetAmounts(c *gin.Context) {
	var filter AmountQueryFilter

	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, AmountListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("amounts.date ASC, amounts.description ASC")

	q = descriptionFilter(q, setFields, filter.Description)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Amounts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var amounts []models.Amount
	err := q.Find(&amounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AmountListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountListResponse{
			Error: &e,
		})
		return
	}

	// Transform resources to their API representation
	data := make([]Amount, 0, len(amounts))
	for _, amount := range amounts {
		apiResource, err := newAmount(c, models.DB, amount)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AmountListResponse{
				Error: &e,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, AmountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get amount
// @Description	Returns a specific amount
// @Tags			Amounts
// @Produce		json
// @Success		200	{object}	AmountResponse
// @Failure		400	{object}	AmountResponse
// @Failure		404	{object}	AmountResponse
// @Failure		500	{object}	AmountResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/amounts/{id} [get]
func GetAmount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	var amount models.Amount
	err = models.DB.First(&amount, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	apiResource, err := newAmount(c, models.DB, amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Data: &apiResource})
}

// @Summary		Update amount
// @Description	Updates an existing amount. Only values to be updated need to be specified.
// @Tags			Amounts
// @Accept			json
// @Produce		json
// @Success		200		{object}	AmountResponse
// @Failure		400		{object}	AmountResponse
// @Failure		403		{object}	AmountResponse
// @Failure		404		{object}	AmountResponse
// @Failure		500		{object}	AmountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			amount	body		AmountEditable	true	"Amount"
// @Router			/v1/amounts/{id} [patch]
func UpdateAmount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	var amount models.Amount
	err = models.DB.First(&amount, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, AmountEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	// Bind the data for the patch
	var data AmountEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&amount).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}

	apiResource, err := newAmount(c, models.DB, amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountResponse{
			Error: &e,
		})
		return
	}
	c.JSON(http.StatusOK, AmountResponse{Data: &apiResource})
}

// @Summary		Delete amount
// @Description	Deletes an amount and all expenses recorded against it
// @Tags			Amounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/amounts/{id} [delete]
func DeleteAmount(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var amount models.Amount
	err = models.DB.First(&amount, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&amount).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get status of all amounts
// @Description	Returns the derived state for every amount
// @Tags			Amounts
// @Produce		json
// @Success		200	{object}	AmountStatusListResponse
// @Failure		500	{object}	AmountStatusListResponse
// @Router			/v1/amounts/status [get]
func GetAmountsStatus(c *gin.Context) {
	var amounts []models.Amount
	err := models.DB.
		Order("amounts.date ASC, amounts.description ASC").
		Find(&amounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountStatusListResponse{
			Error: &e,
		})
		return
	}

	data := make([]AmountStatus, 0, len(amounts))
	for _, amount := range amounts {
		amountStatus, err := amount.Status(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AmountStatusListResponse{
				Error: &e,
			})
			return
		}

		data = append(data, AmountStatus{
			ID:          amount.ID.String(),
			Description: amount.Description,
			Value:       amount.Value,
			Status:      amountStatus,
		})
	}

	c.JSON(http.StatusOK, AmountStatusListResponse{Data: data})
}

// @Summary		Get expenses for amount
// @Description	Returns the spending overview for an amount with all its expenses
// @Tags			Amounts
// @Produce		json
// @Success		200	{object}	AmountExpensesResponse
// @Failure		400	{object}	AmountExpensesResponse
// @Failure		404	{object}	AmountExpensesResponse
// @Failure		500	{object}	AmountExpensesResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/amounts/{id}/expenses [get]
func GetAmountExpenses(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountExpensesResponse{
			Error: &e,
		})
		return
	}

	var amount models.Amount
	err = models.DB.First(&amount, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountExpensesResponse{
			Error: &e,
		})
		return
	}

	expenses, err := amount.Expenses(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountExpensesResponse{
			Error: &e,
		})
		return
	}

	spent, err := amount.ExpenseSum(models.DB, uuid.Nil)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AmountExpensesResponse{
			Error: &e,
		})
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, AmountExpensesResponse{
		Data: &AmountExpenses{
			ID:         amount.ID.String(),
			TotalValue: amount.Value,
			TotalSpent: spent,
			Remaining:  amount.Value.Sub(spent),
			Expenses:   data,
		},
	})
}

// @Summary		Delete expenses for amount
// @Description	Deletes all expenses recorded against an amount. The amount itself is kept.
// @Tags			Amounts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/amounts/{id}/expenses [delete]
func DeleteAmountExpenses(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var amount models.Amount
	err = models.DB.First(&amount, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("amount_id = ?", amount.ID).Delete(&models.Expense{}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
