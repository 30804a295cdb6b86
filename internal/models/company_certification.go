package models

import "time"

// CompanyCertification records that a company holds a certification.
// Code is generated on creation as FCRT-XXXXXXXX.
type CompanyCertification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID       uint `gorm:"not null;index" json:"company"`
	CertificationID uint `gorm:"not null;index" json:"certification"`

	Code                   string     `gorm:"size:20;uniqueIndex;not null" json:"certificationId"`
	IssueDate              time.Time  `gorm:"not null" json:"issueDate"`
	FirstSurveillanceDate  *time.Time `json:"firstSurveillanceDate,omitempty"`
	SecondSurveillanceDate *time.Time `json:"secondSurveillanceDate,omitempty"`
	ExpiryDate             *time.Time `json:"expiryDate,omitempty"`
	Status                 string     `gorm:"size:20;not null;index" json:"status"`
	Notes                  string     `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
