package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"
	"github.com/ppanchal5698/expense-tracker/internal/store"
	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler serves monthly budget CRUD and the status view.
type BudgetHandler struct {
	Store *store.Store
}

func NewBudgetHandler(s *store.Store) *BudgetHandler {
	return &BudgetHandler{Store: s}
}

type createBudgetReq struct {
	CategoryID *uint  `json:"category_id"` // nil = overall budget
	Month      string `json:"month" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

func (h *BudgetHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	budget := models.Budget{
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Amount:     amount,
	}
	if err := h.Store.CreateBudget(user.ID, &budget); err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"budget": budget})
}

func (h *BudgetHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	budgets, err := h.Store.ListBudgets(user.ID, c.Query("month"))
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"budgets": budgets})
}

type updateBudgetReq struct {
	Amount string `json:"amount" binding:"required"`
}

func (h *BudgetHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	budget, err := h.Store.UpdateBudgetAmount(user.ID, id, amount)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"budget": budget})
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Store.DeleteBudget(user.ID, id); err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "budget deleted"})
}

// Status measures the month's budgets against actual spending. Defaults to
// the current month.
func (h *BudgetHandler) Status(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	statuses, err := h.Store.BudgetStatuses(user.ID, month)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{
		"month":   month,
		"budgets": statuses,
	})
}
