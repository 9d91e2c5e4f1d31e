// internal/models/hero_slide.go
package models

type HeroSlide struct {
	BaseModel
	Title    string `json:"title" gorm:"size:255;not null"`
	Subtitle string `json:"subtitle" gorm:"size:255"`
	ImageURL string `json:"imageUrl" gorm:"type:text;not null"`
	ImageKey string `json:"-" gorm:"type:text"`
	Link     string `json:"link" gorm:"type:text"`
	Active   bool   `json:"active"`
	Order    int    `json:"order" gorm:"column:display_order;default:0;index"`
}
