// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  uuid.UUID `json:"category" gorm:"type:uuid;not null;index"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID"`

	// Free text, normalized on write; intentionally not validated against
	// the referenced category's subcategory list.
	Subcategory string `json:"subcategory" gorm:"size:100"`

	Price     float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	CostPrice float64 `json:"costPrice" gorm:"type:decimal(10,2);default:0"`
	Unit      string  `json:"unit" gorm:"size:20;not null;default:'kg'"`

	// Quantity shown by default on listing cards.
	DefaultQuantity string `json:"defaultQuantity" gorm:"size:20;default:'1'"`

	// Purchasable pack-size variants, each with independent price/stock.
	CustomQuantityOptions QuantityOptions `json:"customQuantityOptions" gorm:"type:jsonb"`

	Stock                int    `json:"stock" gorm:"not null;default:0"`
	ImageURL             string `json:"imageUrl,omitempty" gorm:"type:text"`
	ImageKey             string `json:"-" gorm:"type:text"`
	DisplayInLatest      bool   `json:"displayInLatest" gorm:"default:false;index"`
	DisplayInBestSelling bool   `json:"displayInBestSelling" gorm:"default:false;index"`
	OnSale               bool   `json:"onSale" gorm:"default:false"`
	SalePrice            float64 `json:"salePrice" gorm:"type:decimal(10,2);default:0"`
}

// QuantityOption is one purchasable pack size of a product.
type QuantityOption struct {
	Amount string  `json:"amount"`
	Unit   string  `json:"unit"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

// QuantityOptions is stored as a jsonb array column.
type QuantityOptions []QuantityOption

func (q QuantityOptions) Value() (driver.Value, error) {
	if q == nil {
		q = QuantityOptions{}
	}
	return json.Marshal(q)
}

func (q *QuantityOptions) Scan(value interface{}) error {
	if value == nil {
		*q = QuantityOptions{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*q = QuantityOptions{}
		return nil
	}

	return json.Unmarshal(bytes, q)
}

// CategoryRef is the joined category shape attached to products on read:
// the display name, never the full category document.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductView is the read representation of a product. The shadowed
// Category field replaces the raw category id with the joined reference.
type ProductView struct {
	Product
	Category *CategoryRef `json:"category,omitempty"`
}

// View joins the preloaded category onto the product. The subcategory is
// already stored normalized; re-normalizing here keeps responses in the
// bare-string form even for rows written before normalization existed.
func (p Product) View() ProductView {
	v := ProductView{Product: p}
	v.Product.Subcategory = NormalizeName(p.Subcategory)
	if p.Category != nil {
		v.Category = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name}
	}
	return v
}
