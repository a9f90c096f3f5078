package handler

import (
	"net/http"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"
	"github.com/ppanchal5698/expense-tracker/internal/store"
	"github.com/ppanchal5698/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves category CRUD.
type CategoryHandler struct {
	Store *store.Store
}

func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{Store: s}
}

type categoryResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		Color:       cat.Color,
		Icon:        cat.Icon,
		IsDefault:   cat.IsDefault,
		CreatedAt:   cat.CreatedAt,
	}
}

type createCategoryReq struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=255"`
	Color       string `json:"color" binding:"max=16"`
	Icon        string `json:"icon" binding:"max=32"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cat := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := h.Store.CreateCategory(user.ID, &cat); err != nil {
		storeError(c, err)
		return
	}

	util.Success(c, util.Response{"category": toCategoryResp(&cat)})
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cats, err := h.Store.ListCategories(user.ID)
	if err != nil {
		storeError(c, err)
		return
	}

	items := make([]categoryResp, 0, len(cats))
	for i := range cats {
		items = append(items, toCategoryResp(&cats[i]))
	}
	util.Success(c, util.Response{"categories": items})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.Store.GetCategory(user.ID, id)
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(cat)})
}

type updateCategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cat, err := h.Store.UpdateCategory(user.ID, id, store.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(cat)})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Store.DeleteCategory(user.ID, id); err != nil {
		storeError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "category deleted"})
}
