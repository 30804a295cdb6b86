package models

import "time"

// CompanyTraining records a training delivered to a company.
// Code is generated on creation as FTRN-XXXXXXXX.
type CompanyTraining struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID  uint `gorm:"not null;index" json:"company"`
	TrainingID uint `gorm:"not null;index" json:"training"`

	Code                 string     `gorm:"size:20;uniqueIndex;not null" json:"trainingId"`
	TrainingDate         time.Time  `gorm:"not null" json:"trainingDate"`
	NextRetrainingDate   *time.Time `json:"nextRetrainingDate,omitempty"`
	EmployeeCount        int        `gorm:"not null" json:"employeeCount"`
	Notes                string     `gorm:"size:500" json:"notes,omitempty"`
	Status               string     `gorm:"size:30;not null;index" json:"status"`
	TrainingMethod       string     `gorm:"size:20;not null" json:"trainingMethod"`
	Trainer              string     `gorm:"size:100" json:"trainer,omitempty"`
	CertificateIssued    bool       `gorm:"not null;default:false" json:"certificateIssued"`
	CertificateIssueDate *time.Time `json:"certificateIssueDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
