package models

import "time"

type Destination struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Country     string    `gorm:"size:100" json:"country"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:1024" json:"image"`
	IsDomestic  bool      `json:"isDomestic"`
	IsFeatured  bool      `gorm:"default:false" json:"isFeatured"`
	IsActive    bool      `gorm:"index" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
