package models

import "time"

type Certification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name              string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	ShortDescription  string `gorm:"type:text;not null" json:"shortDescription"`
	Description       string `gorm:"type:text;not null" json:"description"`
	CertificationType string `gorm:"size:100;not null;index" json:"certificationType"`
	CallToAction      string `gorm:"type:text;not null" json:"callToAction"`
	DurationInMonths  *int   `json:"durationInMonths,omitempty"`

	Fields []Field `gorm:"many2many:certification_fields;" json:"fields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
