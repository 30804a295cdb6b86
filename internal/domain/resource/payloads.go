package resource

import (
	"strings"
	"time"
)

// ======================================================
// Field
// ======================================================

type FieldPayload struct {
	Name        string `json:"name" validate:"required,min=2,max=100,fieldname"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

func (*FieldPayload) ResourceType() Type  { return TypeField }
func (p *FieldPayload) UniqueKey() string { return p.Name }

func (p *FieldPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
}

// ======================================================
// Certification
// ======================================================

type CertificationPayload struct {
	Name              string `json:"name" validate:"required,max=200"`
	ShortDescription  string `json:"shortDescription" validate:"required,minwords=15,maxwords=18"`
	Description       string `json:"description" validate:"required"`
	CertificationType string `json:"certificationType" validate:"required,max=100"`
	CallToAction      string `json:"callToAction" validate:"required"`
	Fields            []uint `json:"fields" validate:"required,min=1,dive,gt=0"`
	DurationInMonths  *int   `json:"durationInMonths,omitempty" validate:"omitempty,min=1"`
}

func (*CertificationPayload) ResourceType() Type  { return TypeCertification }
func (p *CertificationPayload) UniqueKey() string { return p.Name }

func (p *CertificationPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.ShortDescription = strings.TrimSpace(p.ShortDescription)
	p.Description = strings.TrimSpace(p.Description)
	p.CertificationType = strings.TrimSpace(p.CertificationType)
	p.CallToAction = strings.TrimSpace(p.CallToAction)
	p.Fields = UniqueIDs(p.Fields)
}

func (p *CertificationPayload) References() []Reference {
	return []Reference{{Type: TypeField, IDs: p.Fields}}
}

// ======================================================
// Training
// ======================================================

type TrainingPayload struct {
	Name            string   `json:"name" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required"`
	TrainingType    string   `json:"trainingType" validate:"required,max=100"`
	TrainingMethod  []string `json:"trainingMethod" validate:"required,min=1,dive,oneof=online in-person hybrid"`
	Fields          []uint   `json:"fields,omitempty" validate:"dive,gt=0"`
	DurationInHours int      `json:"durationInHours" validate:"required,min=1"`
}

func (*TrainingPayload) ResourceType() Type  { return TypeTraining }
func (p *TrainingPayload) UniqueKey() string { return p.Name }

func (p *TrainingPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.TrainingType = strings.TrimSpace(p.TrainingType)
	p.Fields = UniqueIDs(p.Fields)
}

func (p *TrainingPayload) References() []Reference {
	return []Reference{{Type: TypeField, IDs: p.Fields}}
}

// ======================================================
// Company
// ======================================================

type AddressPayload struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type CompanyPayload struct {
	Name          string         `json:"name" validate:"required,max=200"`
	OriginCountry string         `json:"originCountry" validate:"required"`
	Category      string         `json:"category" validate:"required"`
	EmployeeCount int            `json:"employeeCount" validate:"required,min=1"`
	Scope         string         `json:"scope" validate:"required"`
	Fields        []uint         `json:"fields" validate:"required,min=1,dive,gt=0"`
	Email         string         `json:"email" validate:"required,email"`
	Phone         string         `json:"phone" validate:"required"`
	Address       AddressPayload `json:"address"`
}

func (*CompanyPayload) ResourceType() Type  { return TypeCompany }
func (p *CompanyPayload) UniqueKey() string { return p.Name }

func (p *CompanyPayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.OriginCountry = strings.TrimSpace(p.OriginCountry)
	p.Category = strings.TrimSpace(p.Category)
	p.Scope = strings.TrimSpace(p.Scope)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Fields = UniqueIDs(p.Fields)
}

func (p *CompanyPayload) References() []Reference {
	return []Reference{{Type: TypeField, IDs: p.Fields}}
}

// ======================================================
// CompanyCertification
// ======================================================

type CompanyCertificationPayload struct {
	CompanyID              uint       `json:"company" validate:"required"`
	CertificationID        uint       `json:"certification" validate:"required"`
	IssueDate              time.Time  `json:"issueDate" validate:"required"`
	FirstSurveillanceDate  *time.Time `json:"firstSurveillanceDate,omitempty"`
	SecondSurveillanceDate *time.Time `json:"secondSurveillanceDate,omitempty"`
	ExpiryDate             *time.Time `json:"expiryDate,omitempty"`
	Status                 string     `json:"status" validate:"required,oneof=active suspended expired recertification"`
	Notes                  string     `json:"notes,omitempty"`
}

func (*CompanyCertificationPayload) ResourceType() Type { return TypeCompanyCertification }
func (*CompanyCertificationPayload) UniqueKey() string  { return "" }

func (p *CompanyCertificationPayload) Normalize() {
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))
	p.Notes = strings.TrimSpace(p.Notes)
}

func (p *CompanyCertificationPayload) References() []Reference {
	return []Reference{
		{Type: TypeCompany, IDs: []uint{p.CompanyID}},
		{Type: TypeCertification, IDs: []uint{p.CertificationID}},
	}
}

// ======================================================
// CompanyTraining
// ======================================================

const DefaultCompanyTrainingStatus = "Completed"

type CompanyTrainingPayload struct {
	CompanyID            uint       `json:"company" validate:"required"`
	TrainingID           uint       `json:"training" validate:"required"`
	TrainingDate         time.Time  `json:"trainingDate" validate:"required"`
	NextRetrainingDate   *time.Time `json:"nextRetrainingDate,omitempty"`
	EmployeeCount        int        `json:"employeeCount" validate:"required,min=1"`
	Notes                string     `json:"notes,omitempty" validate:"max=500"`
	Status               string     `json:"status,omitempty" validate:"oneof='Requested' 'In Progress' 'Completed' 'Time to Retrain'"`
	TrainingMethod       string     `json:"trainingMethod" validate:"required,oneof=online in-person hybrid"`
	Trainer              string     `json:"trainer,omitempty" validate:"max=100"`
	CertificateIssued    bool       `json:"certificateIssued"`
	CertificateIssueDate *time.Time `json:"certificateIssueDate,omitempty"`
}

func (*CompanyTrainingPayload) ResourceType() Type { return TypeCompanyTraining }
func (*CompanyTrainingPayload) UniqueKey() string  { return "" }

func (p *CompanyTrainingPayload) Normalize() {
	p.Notes = strings.TrimSpace(p.Notes)
	p.Trainer = strings.TrimSpace(p.Trainer)
	p.Status = strings.TrimSpace(p.Status)
	if p.Status == "" {
		p.Status = DefaultCompanyTrainingStatus
	}
}

func (p *CompanyTrainingPayload) References() []Reference {
	return []Reference{
		{Type: TypeCompany, IDs: []uint{p.CompanyID}},
		{Type: TypeTraining, IDs: []uint{p.TrainingID}},
	}
}

// ======================================================
// Page
// ======================================================

type PagePayload struct {
	Name           string   `json:"name" validate:"required,min=3,max=100"`
	Title          string   `json:"title" validate:"required,max=200"`
	Body           string   `json:"body" validate:"required"`
	SeoKeywords    []string `json:"seoKeywords,omitempty" validate:"dive,required,max=50"`
	SeoDescription string   `json:"seoDescription,omitempty" validate:"max=160"`
}

func (*PagePayload) ResourceType() Type  { return TypePage }
func (p *PagePayload) UniqueKey() string { return p.Name }

func (p *PagePayload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Title = strings.TrimSpace(p.Title)
	p.SeoDescription = strings.TrimSpace(p.SeoDescription)
	for i, kw := range p.SeoKeywords {
		p.SeoKeywords[i] = strings.TrimSpace(kw)
	}
}
