package models

import "time"

type Address struct {
	Street     string `gorm:"size:200" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postalCode"`
	Country    string `gorm:"size:100" json:"country"`
}

type Company struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string  `gorm:"size:200;uniqueIndex;not null" json:"name"`
	OriginCountry string  `gorm:"size:100;not null" json:"originCountry"`
	Category      string  `gorm:"size:100;not null" json:"category"`
	EmployeeCount int     `gorm:"not null" json:"employeeCount"`
	Scope         string  `gorm:"type:text;not null" json:"scope"`
	Email         string  `gorm:"size:100;not null" json:"email"`
	Phone         string  `gorm:"size:40;not null" json:"phone"`
	Address       Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	Fields []Field `gorm:"many2many:company_fields;" json:"fields"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
