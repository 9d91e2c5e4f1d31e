// internal/services/hero_slide_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/models"
)

type HeroSlideService struct {
	db      *gorm.DB
	storage *StorageService
}

// HeroSlideInput carries raw multipart form values, same coercion rules as
// product input.
type HeroSlideInput struct {
	Title    string
	Subtitle string
	Link     string
	Active   string
	ImageURL string
	ImageKey string
}

func NewHeroSlideService(db *gorm.DB, storage *StorageService) *HeroSlideService {
	return &HeroSlideService{db: db, storage: storage}
}

func (s *HeroSlideService) List() ([]models.HeroSlide, error) {
	var slides []models.HeroSlide
	if err := s.db.Order("display_order ASC").Find(&slides).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch hero slides: %w", err)
	}
	return slides, nil
}

func (s *HeroSlideService) Create(input *HeroSlideInput) (*models.HeroSlide, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, newValidationError("Slide title is required")
	}
	if input.ImageURL == "" {
		return nil, newValidationError("Slide image is required")
	}

	var total int64
	if err := s.db.Model(&models.HeroSlide{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count hero slides: %w", err)
	}

	// New slides are active unless the form says otherwise.
	active := true
	if strings.TrimSpace(input.Active) != "" {
		active = parseFormBool(input.Active)
	}

	slide := &models.HeroSlide{
		Title:    title,
		Subtitle: input.Subtitle,
		Link:     input.Link,
		ImageURL: input.ImageURL,
		ImageKey: input.ImageKey,
		Active:   active,
		Order:    int(total) + 1,
	}

	if err := s.db.Create(slide).Error; err != nil {
		return nil, fmt.Errorf("failed to create hero slide: %w", err)
	}
	return slide, nil
}

func (s *HeroSlideService) Update(idRaw string, input *HeroSlideInput) (*models.HeroSlide, error) {
	id, err := ParseID(idRaw)
	if err != nil {
		return nil, err
	}

	var slide models.HeroSlide
	if err := s.db.First(&slide, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Slide"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"title":    strings.TrimSpace(input.Title),
		"subtitle": input.Subtitle,
		"link":     input.Link,
		"active":   parseFormBool(input.Active),
	}
	if input.ImageURL != "" {
		updates["image_url"] = input.ImageURL
		updates["image_key"] = input.ImageKey
	}

	if err := s.db.Model(&slide).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update hero slide: %w", err)
	}

	s.db.First(&slide, "id = ?", id)
	return &slide, nil
}

func (s *HeroSlideService) Delete(idRaw string) error {
	id, err := ParseID(idRaw)
	if err != nil {
		return err
	}

	var slide models.HeroSlide
	if err := s.db.First(&slide, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Slide"}
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&slide).Error; err != nil {
		return fmt.Errorf("failed to delete hero slide: %w", err)
	}

	if slide.ImageKey != "" && s.storage != nil {
		if err := s.storage.DeleteFile(slide.ImageKey); err != nil {
			logrus.WithError(err).WithField("key", slide.ImageKey).
				Warn("failed to delete hero slide image")
		}
	}

	return nil
}

// Reorder rewrites slide positions to match the given id order, 1-based.
// Ids that do not resolve to a slide are skipped, matching the tolerant
// behavior of the admin frontend's drag-and-drop submit.
func (s *HeroSlideService) Reorder(orderList []string) error {
	if len(orderList) == 0 {
		return newValidationError("orderList is required")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, idRaw := range orderList {
			id, err := ParseID(idRaw)
			if err != nil {
				continue
			}
			if err := tx.Model(&models.HeroSlide{}).
				Where("id = ?", id).
				Update("display_order", i+1).Error; err != nil {
				return fmt.Errorf("failed to reorder hero slides: %w", err)
			}
		}
		return nil
	})
}
