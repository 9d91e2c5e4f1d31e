// internal/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshpick/catalog-backend/internal/services"
	"github.com/freshpick/catalog-backend/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		respondServiceError(c, err, "category", "Failed to fetch categories", false)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// POST /api/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BareErrorJSON(c, http.StatusBadRequest, "Failed to create category", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.BareErrorJSON(c, http.StatusBadRequest, "Category name is required", utils.GetValidationErrors(err))
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		respondServiceError(c, err, "category", "Failed to create category", false)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BareErrorJSON(c, http.StatusBadRequest, "Failed to update category", err.Error())
		return
	}

	category, err := h.categoryService.Update(c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err, "category", "Failed to update category", false)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "category", "Failed to delete category", false)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/categories/:id/subcategories
func (h *CategoryHandler) AddSubcategory(c *gin.Context) {
	var req services.SubcategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BareErrorJSON(c, http.StatusBadRequest, "Failed to add subcategory", err.Error())
		return
	}

	category, err := h.categoryService.AddSubcategory(c.Param("id"), req.Name)
	if err != nil {
		respondServiceError(c, err, "category", "Failed to add subcategory", false)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DELETE /api/categories/:id/subcategories/:subId
func (h *CategoryHandler) RemoveSubcategory(c *gin.Context) {
	if err := h.categoryService.RemoveSubcategory(c.Param("id"), c.Param("subId")); err != nil {
		respondServiceError(c, err, "category", "Failed to delete subcategory", false)
		return
	}
	c.Status(http.StatusNoContent)
}
