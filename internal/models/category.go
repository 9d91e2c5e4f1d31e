// internal/models/category.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:100;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Subcategories []Subcategory  `json:"subcategories" gorm:"foreignKey:CategoryID"`
	ProductCount  int            `json:"productCount" gorm:"default:0"`
	Status        CategoryStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
}

// Subcategory rows are ordered by Position within their category. The
// compound unique index backs up the application-level duplicate check so
// two concurrent adds of the same name cannot both land.
type Subcategory struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CategoryID uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_subcategories_category_name"`
	Name       string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_subcategories_category_name"`
	Position   int       `json:"-" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"-"`
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
