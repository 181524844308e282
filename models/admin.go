package models

import "time"

type Admin struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FullName  string     `gorm:"size:255" json:"fullName"`
	Username  string     `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string     `gorm:"size:255" json:"-"` // bcrypt hash, never serialised
	Role      string     `gorm:"size:50;default:admin" json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
