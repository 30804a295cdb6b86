package dto

import (
	"time"

	"github.com/BruksfildServices01/certhub/internal/models"
)

const (
	activeCertificationStatus = "active"
	completedTrainingStatus   = "Completed"
)

// CertificationVerificationDTO is what the public verify endpoint discloses
// about an issued certification.
type CertificationVerificationDTO struct {
	CertificationID string `json:"certificationId"`
	Company         struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"company"`
	Certification struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"certification"`
	IssueDate  time.Time  `json:"issueDate"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Status     string     `json:"status"`
	IsValid    bool       `json:"isValid"`
}

// NewCertificationVerification reports the record as valid only while it is
// active and has an expiry date after now.
func NewCertificationVerification(d *models.CompanyCertificationDetail, now time.Time) CertificationVerificationDTO {
	out := CertificationVerificationDTO{
		CertificationID: d.Record.Code,
		IssueDate:       d.Record.IssueDate,
		ExpiryDate:      d.Record.ExpiryDate,
		Status:          d.Record.Status,
	}
	out.Company.Name = d.Company.Name
	out.Company.Country = d.Company.OriginCountry
	out.Certification.Name = d.Certification.Name
	out.Certification.Type = d.Certification.CertificationType
	out.IsValid = d.Record.Status == activeCertificationStatus &&
		d.Record.ExpiryDate != nil && d.Record.ExpiryDate.After(now)
	return out
}

type TrainingVerificationDTO struct {
	TrainingID string `json:"trainingId"`
	Company    struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"company"`
	Training struct {
		Name   string   `json:"name"`
		Type   string   `json:"type"`
		Method []string `json:"method"`
	} `json:"training"`
	TrainingDate      time.Time `json:"trainingDate"`
	DeliveredAs       string    `json:"deliveredAs"`
	EmployeeCount     int       `json:"employeeCount"`
	Status            string    `json:"status"`
	Completed         bool      `json:"completed"`
	CertificateIssued bool      `json:"certificateIssued"`
}

func NewTrainingVerification(d *models.CompanyTrainingDetail) TrainingVerificationDTO {
	out := TrainingVerificationDTO{
		TrainingID:        d.Record.Code,
		TrainingDate:      d.Record.TrainingDate,
		DeliveredAs:       d.Record.TrainingMethod,
		EmployeeCount:     d.Record.EmployeeCount,
		Status:            d.Record.Status,
		Completed:         d.Record.Status == completedTrainingStatus,
		CertificateIssued: d.Record.CertificateIssued,
	}
	out.Company.Name = d.Company.Name
	out.Company.Country = d.Company.OriginCountry
	out.Training.Name = d.Training.Name
	out.Training.Type = d.Training.TrainingType
	out.Training.Method = append([]string{}, d.Training.TrainingMethod...)
	return out
}
