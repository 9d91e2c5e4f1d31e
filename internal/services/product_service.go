// internal/services/product_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/config"
	"github.com/freshpick/catalog-backend/internal/models"
)

type ProductService struct {
	db      *gorm.DB
	storage *StorageService
	cfg     *config.Config
}

// ProductInput carries the raw multipart form values. Everything arrives as
// a string; coercion happens here, at the boundary, so the ambiguity never
// propagates into the stored model.
type ProductInput struct {
	Name                  string
	Description           string
	Category              string
	Subcategory           string
	Price                 string
	CostPrice             string
	Unit                  string
	DefaultQuantity       string
	CustomQuantityOptions string
	Stock                 string
	DisplayInLatest       string
	DisplayInBestSelling  string
	OnSale                string
	SalePrice             string
	ImageURL              string
	ImageKey              string
}

func NewProductService(db *gorm.DB, storage *StorageService, cfg *config.Config) *ProductService {
	return &ProductService{db: db, storage: storage, cfg: cfg}
}

// Boolean form fields are true only for the literal "true"; everything
// else, including absence, is false.
func parseFormBool(raw string) bool {
	return raw == "true"
}

func (s *ProductService) parseFloatField(field, raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		if s.cfg.Catalog.StrictNumeric {
			return 0, newValidationError("%s must be a number", field)
		}
		return 0, nil
	}
	return value, nil
}

func (s *ProductService) parseIntField(field, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if s.cfg.Catalog.StrictNumeric {
			return 0, newValidationError("%s must be an integer", field)
		}
		return 0, nil
	}
	return value, nil
}

// The subcategory may arrive as a plain string or as a {name} object echoed
// back from a prior normalized read. Either way the canonical form is the
// bare trimmed-lowercased string.
func normalizeSubcategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			return models.NormalizeName(obj.Name)
		}
	}
	return models.NormalizeName(raw)
}

// parseQuantityOptions accepts a JSON-encoded array of pack-size options.
// Malformed input is discarded rather than failing the request.
func parseQuantityOptions(raw string) models.QuantityOptions {
	if strings.TrimSpace(raw) == "" {
		return models.QuantityOptions{}
	}

	var options models.QuantityOptions
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		logrus.WithError(err).Warn("discarding malformed custom quantity options")
		return models.QuantityOptions{}
	}

	sanitized := make(models.QuantityOptions, 0, len(options))
	for _, opt := range options {
		opt.Amount = strings.TrimSpace(opt.Amount)
		opt.Unit = strings.TrimSpace(opt.Unit)
		if opt.Price < 0 {
			opt.Price = 0
		}
		if opt.Stock < 0 {
			opt.Stock = 0
		}
		sanitized = append(sanitized, opt)
	}
	return sanitized
}

func (s *ProductService) coerce(input *ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, newValidationError("Product name is required")
	}

	categoryRaw := strings.TrimSpace(input.Category)
	if categoryRaw == "" {
		return nil, newValidationError("Product category is required")
	}
	categoryID, err := ParseID(categoryRaw)
	if err != nil {
		return nil, newValidationError("Product category is not a valid identifier")
	}

	price, err := s.parseFloatField("price", input.Price)
	if err != nil {
		return nil, err
	}
	costPrice, err := s.parseFloatField("costPrice", input.CostPrice)
	if err != nil {
		return nil, err
	}
	salePrice, err := s.parseFloatField("salePrice", input.SalePrice)
	if err != nil {
		return nil, err
	}
	stock, err := s.parseIntField("stock", input.Stock)
	if err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "kg"
	}
	defaultQuantity := strings.TrimSpace(input.DefaultQuantity)
	if defaultQuantity == "" {
		defaultQuantity = "1"
	}

	return &models.Product{
		Name:                  name,
		Description:           input.Description,
		CategoryID:            categoryID,
		Subcategory:           normalizeSubcategory(input.Subcategory),
		Price:                 price,
		CostPrice:             costPrice,
		Unit:                  unit,
		DefaultQuantity:       defaultQuantity,
		CustomQuantityOptions: parseQuantityOptions(input.CustomQuantityOptions),
		Stock:                 stock,
		ImageURL:              input.ImageURL,
		ImageKey:              input.ImageKey,
		DisplayInLatest:       parseFormBool(input.DisplayInLatest),
		DisplayInBestSelling:  parseFormBool(input.DisplayInBestSelling),
		OnSale:                parseFormBool(input.OnSale),
		SalePrice:             salePrice,
	}, nil
}

func (s *ProductService) Create(input *ProductInput) (*models.Product, error) {
	product, err := s.coerce(input)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Update applies full-field replace semantics: every editable field is
// rewritten from the input. createdAt is never touched, and the image is
// replaced only when a new upload arrived.
func (s *ProductService) Update(idRaw string, input *ProductInput) (*models.Product, error) {
	id, err := ParseID(idRaw)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Product"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	coerced, err := s.coerce(input)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":                    coerced.Name,
		"description":             coerced.Description,
		"category_id":             coerced.CategoryID,
		"subcategory":             coerced.Subcategory,
		"price":                   coerced.Price,
		"cost_price":              coerced.CostPrice,
		"unit":                    coerced.Unit,
		"default_quantity":        coerced.DefaultQuantity,
		"custom_quantity_options": coerced.CustomQuantityOptions,
		"stock":                   coerced.Stock,
		"display_in_latest":       coerced.DisplayInLatest,
		"display_in_best_selling": coerced.DisplayInBestSelling,
		"on_sale":                 coerced.OnSale,
		"sale_price":              coerced.SalePrice,
	}
	if input.ImageURL != "" {
		updates["image_url"] = input.ImageURL
		updates["image_key"] = input.ImageKey
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.db.First(&product, "id = ?", id)
	return &product, nil
}

func (s *ProductService) Delete(idRaw string) error {
	id, err := ParseID(idRaw)
	if err != nil {
		return err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Product"}
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	// Best effort only; a dangling object in the media store is preferable
	// to a delete that cannot complete.
	if product.ImageKey != "" && s.storage != nil {
		if err := s.storage.DeleteFile(product.ImageKey); err != nil {
			logrus.WithError(err).WithField("key", product.ImageKey).
				Warn("failed to delete product image")
		}
	}

	return nil
}

func (s *ProductService) ListAll() ([]models.ProductView, error) {
	return s.list(s.db)
}

func (s *ProductService) ListLatest() ([]models.ProductView, error) {
	return s.list(s.db.Where("display_in_latest = ?", true))
}

func (s *ProductService) ListBestSelling() ([]models.ProductView, error) {
	return s.list(s.db.Where("display_in_best_selling = ?", true))
}

func (s *ProductService) list(tx *gorm.DB) ([]models.ProductView, error) {
	var products []models.Product
	if err := tx.Preload("Category").Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return views(products), nil
}

func (s *ProductService) GetByID(idRaw string) (*models.ProductView, error) {
	id, err := ParseID(idRaw)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Product"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	view := product.View()
	return &view, nil
}

// FindSimilar returns up to the configured limit of other products sharing
// the subject's category, never including the subject itself.
func (s *ProductService) FindSimilar(idRaw string) ([]models.ProductView, error) {
	id, err := ParseID(idRaw)
	if err != nil {
		return nil, err
	}

	var subject models.Product
	if err := s.db.First(&subject, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Product"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var products []models.Product
	if err := s.db.Where("category_id = ? AND id <> ?", subject.CategoryID, subject.ID).
		Preload("Category").
		Order("created_at DESC").
		Limit(s.cfg.Catalog.SimilarLimit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch similar products: %w", err)
	}

	return views(products), nil
}

func views(products []models.Product) []models.ProductView {
	result := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		result = append(result, p.View())
	}
	return result
}
