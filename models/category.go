package models

import "time"

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"not null" json:"name"`
	Description   string        `json:"description"`
	Image         string        `json:"image"`
	IsActive      *bool         `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
	Products      []Product     `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
