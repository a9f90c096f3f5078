package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/config"
	"github.com/ppanchal5698/expense-tracker/internal/models"
	"github.com/ppanchal5698/expense-tracker/internal/store"
	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler serves expense CRUD and the filtered listing.
type ExpenseHandler struct {
	Store           *store.Store
	DefaultPageSize int
}

func NewExpenseHandler(s *store.Store, app config.AppSubConfig) *ExpenseHandler {
	size := app.PageSize
	if size <= 0 {
		size = 20
	}
	return &ExpenseHandler{Store: s, DefaultPageSize: size}
}

type expenseResp struct {
	ID            uint              `json:"id"`
	CategoryID    uint              `json:"category_id"`
	Amount        decimal.Decimal   `json:"amount"`
	ExpenseDate   string            `json:"expense_date"`
	Description   string            `json:"description,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Tags          models.StringList `json:"tags,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	ReceiptURL    string            `json:"receipt_url,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:            e.ID,
		CategoryID:    e.CategoryID,
		Amount:        e.Amount,
		ExpenseDate:   e.ExpenseDate.Format("2006-01-02"),
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		Tags:          e.Tags,
		Notes:         e.Notes,
		ReceiptURL:    e.ReceiptURL,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type createExpenseReq struct {
	CategoryID    uint     `json:"category_id" binding:"required"`
	Amount        string   `json:"amount" binding:"required"`
	ExpenseDate   string   `json:"expense_date" binding:"required"`
	Description   string   `json:"description" binding:"max=255"`
	PaymentMethod string   `json:"payment_method"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
	ReceiptURL    string   `json:"receipt_url" binding:"max=255"`
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}
	date, err := util.ParseDate(req.ExpenseDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	exp := models.Expense{
		CategoryID:    req.CategoryID,
		Amount:        amount,
		ExpenseDate:   date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Tags:          req.Tags,
		Notes:         req.Notes,
		ReceiptURL:    req.ReceiptURL,
	}
	if err := h.Store.CreateExpense(user.ID, &exp); err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{"expense": toExpenseResp(&exp)})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	exp, err := h.Store.GetExpense(user.ID, id)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": toExpenseResp(exp)})
}

type updateExpenseReq struct {
	CategoryID    *uint     `json:"category_id"`
	Amount        *string   `json:"amount"`
	ExpenseDate   *string   `json:"expense_date"`
	Description   *string   `json:"description"`
	PaymentMethod *string   `json:"payment_method"`
	Tags          *[]string `json:"tags"`
	Notes         *string   `json:"notes"`
	ReceiptURL    *string   `json:"receipt_url"`
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	upd := store.ExpenseUpdate{
		CategoryID:    req.CategoryID,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		ReceiptURL:    req.ReceiptURL,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(strings.TrimSpace(*req.Amount))
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
			return
		}
		upd.Amount = &amount
	}
	if req.ExpenseDate != nil {
		date, err := util.ParseDate(*req.ExpenseDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		upd.ExpenseDate = &date
	}
	if req.Tags != nil {
		tags := models.StringList(*req.Tags)
		upd.Tags = &tags
	}

	exp, err := h.Store.UpdateExpense(user.ID, id, upd)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": toExpenseResp(exp)})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Store.DeleteExpense(user.ID, id); err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "expense deleted"})
}

// parseExpenseFilter reads the optional filter query parameters shared by the
// listing and the exporters. Every absent parameter is simply omitted from
// the filter.
func parseExpenseFilter(c *gin.Context) (store.ExpenseFilter, error) {
	var f store.ExpenseFilter

	if s := c.Query("start"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}
	if s := c.Query("category_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			return f, fmt.Errorf("invalid category_id")
		}
		cid := uint(id)
		f.CategoryID = &cid
	}
	if s := c.Query("min_amount"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fmt.Errorf("invalid min_amount")
		}
		f.MinAmount = &d
	}
	if s := c.Query("max_amount"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fmt.Errorf("invalid max_amount")
		}
		f.MaxAmount = &d
	}
	if s := c.Query("payment_method"); s != "" {
		if !models.ValidPaymentMethod(s) {
			return f, fmt.Errorf("unknown payment method %q", s)
		}
		f.PaymentMethod = &s
	}
	if s := c.Query("tags"); s != "" {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				f.Tags = append(f.Tags, p)
			}
		}
	}
	return f, nil
}

// List returns one page of the owner's expenses under the supplied filters.
func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	page := 1
	if s := c.Query("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid page")
			return
		}
	}
	size := h.DefaultPageSize
	if s := c.Query("page_size"); s != "" {
		if size, err = strconv.Atoi(s); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid page_size")
			return
		}
	}

	result, err := h.Store.ListExpenses(user.ID, filter, page, size)
	if err != nil {
		storeError(c, err)
		return
	}

	items := make([]expenseResp, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toExpenseResp(&result.Items[i]))
	}

	util.Success(c, util.Response{
		"items":       items,
		"total":       result.Total,
		"page":        result.Page,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}
