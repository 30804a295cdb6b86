package models

import (
	"time"

	"gorm.io/datatypes"
)

type Training struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string                      `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Description     string                      `gorm:"type:text;not null" json:"description"`
	TrainingType    string                      `gorm:"size:100;not null;index" json:"trainingType"`
	TrainingMethod  datatypes.JSONSlice[string] `json:"trainingMethod"`
	DurationInHours int                         `gorm:"not null" json:"durationInHours"`

	Fields []Field `gorm:"many2many:training_fields;" json:"fields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
