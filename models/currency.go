package models

import "time"

// Currency is a display currency. ExchangeRate is relative to the default
// currency; at most one currency carries IsDefault.
type Currency struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"uniqueIndex;size:3;not null" json:"code"`
	Name         string    `gorm:"size:100" json:"name"`
	Symbol       string    `gorm:"size:10;not null" json:"symbol"`
	ExchangeRate float64   `gorm:"type:decimal(14,6);not null;default:1" json:"exchangeRate"`
	IsDefault    bool      `gorm:"default:false" json:"isDefault"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
