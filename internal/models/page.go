package models

import (
	"time"

	"gorm.io/datatypes"
)

type Page struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string                      `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Title          string                      `gorm:"size:200;not null" json:"title"`
	Body           string                      `gorm:"type:text;not null" json:"body"`
	SeoKeywords    datatypes.JSONSlice[string] `json:"seoKeywords"`
	SeoDescription string                      `gorm:"size:160" json:"seoDescription,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
