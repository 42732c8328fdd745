package models

import "time"

// Product status tags. A product may carry any subset of these in its
// Status column.
const (
	StatusBestSeller = "best_seller"
	StatusNew        = "new"
	StatusOnSale     = "on_sale"
)

var AllowedProductStatuses = []string{StatusBestSeller, StatusNew, StatusOnSale}

type Product struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null" json:"name"`
	Description   string       `json:"description"`
	Price         float64      `gorm:"not null" json:"price"`
	Stock         int          `gorm:"not null;default:0" json:"stock"`
	Images        []string     `gorm:"type:text;serializer:json" json:"images"`
	Status        []string     `gorm:"type:text;serializer:json" json:"status"`
	IsActive      *bool        `gorm:"default:true" json:"is_active"`
	CategoryID    uint         `gorm:"not null" json:"category_id"`
	SubcategoryID *uint        `json:"subcategory_id"`
	Category      *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory   *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Product) HasStatus(tag string) bool {
	for _, s := range p.Status {
		if s == tag {
			return true
		}
	}
	return false
}
