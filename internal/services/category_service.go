// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/models"
)

type CategoryService struct {
	db *gorm.DB
}

type SubcategoryInput struct {
	Name string `json:"name"`
}

type CreateCategoryRequest struct {
	Name          string             `json:"name" validate:"required"`
	Description   string             `json:"description"`
	Subcategories []SubcategoryInput `json:"subcategories"`
}

type UpdateCategoryRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Status      *models.CategoryStatus `json:"status"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func orderedSubcategories(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Preload("Subcategories", orderedSubcategories).
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	name := models.NormalizeName(req.Name)
	if name == "" {
		return nil, newValidationError("Category name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: req.Description,
		Status:      models.CategoryStatusActive,
	}

	// Normalize and dedupe the initial subcategory list; the unique index
	// would reject a repeated name anyway.
	seen := make(map[string]bool)
	position := 0
	for _, sub := range req.Subcategories {
		subName := models.NormalizeName(sub.Name)
		if subName == "" || seen[subName] {
			continue
		}
		seen[subName] = true
		position++
		category.Subcategories = append(category.Subcategories, models.Subcategory{
			Name:     subName,
			Position: position,
		})
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) Update(idRaw string, req *UpdateCategoryRequest) (*models.Category, error) {
	id, err := ParseID(idRaw)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Category"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := models.NormalizeName(*req.Name)
		if name == "" {
			return nil, newValidationError("Category name is required")
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if *req.Status != models.CategoryStatusActive && *req.Status != models.CategoryStatusInactive {
			return nil, newValidationError("Category status must be active or inactive")
		}
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	s.db.Preload("Subcategories", orderedSubcategories).First(&category, "id = ?", id)
	return &category, nil
}

// Delete removes the category and its subcategory rows. Products that still
// reference the category are left untouched; there is no cascade.
func (s *CategoryService) Delete(idRaw string) error {
	id, err := ParseID(idRaw)
	if err != nil {
		return err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Category"}
		}
		return fmt.Errorf("database error: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete subcategories: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

func (s *CategoryService) AddSubcategory(categoryIDRaw, name string) (*models.Category, error) {
	categoryID, err := ParseID(categoryIDRaw)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.Preload("Subcategories", orderedSubcategories).
		First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Category"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	normalized := models.NormalizeName(name)
	if normalized == "" {
		return nil, newValidationError("Subcategory name is required")
	}

	for _, sub := range category.Subcategories {
		if sub.Name == normalized {
			return nil, &ConflictError{Message: "Subcategory already exists"}
		}
	}

	subcategory := models.Subcategory{
		CategoryID: categoryID,
		Name:       normalized,
		Position:   len(category.Subcategories) + 1,
	}
	if err := s.db.Create(&subcategory).Error; err != nil {
		// Backstop for the check-then-act race: the compound unique index
		// catches a concurrent insert of the same name.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ConflictError{Message: "Subcategory already exists"}
		}
		return nil, fmt.Errorf("failed to add subcategory: %w", err)
	}

	s.db.Preload("Subcategories", orderedSubcategories).First(&category, "id = ?", categoryID)
	return &category, nil
}

func (s *CategoryService) RemoveSubcategory(categoryIDRaw, subIDRaw string) error {
	categoryID, err := ParseID(categoryIDRaw)
	if err != nil {
		return err
	}
	subID, err := ParseID(subIDRaw)
	if err != nil {
		return err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Category"}
		}
		return fmt.Errorf("database error: %w", err)
	}

	result := s.db.Where("id = ? AND category_id = ?", subID, categoryID).
		Delete(&models.Subcategory{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete subcategory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "Subcategory"}
	}
	return nil
}
