package models

import "time"

type MenuItem struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null;index"`
	Image       string    `json:"image" gorm:"not null"` // image path or emoji glyph
	Rating      float64   `json:"rating" gorm:"default:4.5"`
	PrepTime    string    `json:"prep_time"` // display string, e.g. "15-20 min"
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
