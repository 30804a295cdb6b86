package repository

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/models"
)

const (
	companyCertificationCodePrefix = "FCRT"
	companyTrainingCodePrefix      = "FTRN"
)

// ======================================================
// COMPANY CERTIFICATION
// ======================================================

type CompanyCertificationStore struct {
	baseStore[models.CompanyCertification]
}

var _ resource.Store = (*CompanyCertificationStore)(nil)

func NewCompanyCertificationStore(db *gorm.DB) *CompanyCertificationStore {
	return &CompanyCertificationStore{baseStore[models.CompanyCertification]{
		db:      db,
		typ:     resource.TypeCompanyCertification,
		orderBy: "issue_date DESC",
	}}
}

func (s *CompanyCertificationStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.CompanyCertificationPayload{
		CompanyID:              m.CompanyID,
		CertificationID:        m.CertificationID,
		IssueDate:              m.IssueDate,
		FirstSurveillanceDate:  m.FirstSurveillanceDate,
		SecondSurveillanceDate: m.SecondSurveillanceDate,
		ExpiryDate:             m.ExpiryDate,
		Status:                 m.Status,
		Notes:                  m.Notes,
	}, nil
}

func (s *CompanyCertificationStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	cp, ok := p.(*resource.CompanyCertificationPayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.checkParents(ctx, cp); err != nil {
		return 0, err
	}

	m := models.CompanyCertification{Code: newCode(companyCertificationCodePrefix)}
	s.assign(&m, cp)
	if err := s.conn(ctx).Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create company certification")
	}
	return m.ID, nil
}

func (s *CompanyCertificationStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	cp, ok := p.(*resource.CompanyCertificationPayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.checkParents(ctx, cp); err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	s.assign(m, cp)
	return pkgerrors.Wrap(s.conn(ctx).Save(m).Error, "update company certification")
}

func (s *CompanyCertificationStore) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteRow(ctx, id)
}

func (s *CompanyCertificationStore) checkParents(ctx context.Context, cp *resource.CompanyCertificationPayload) error {
	if err := requireRow(ctx, s.db, &models.Company{}, resource.TypeCompany, cp.CompanyID); err != nil {
		return err
	}
	return requireRow(ctx, s.db, &models.Certification{}, resource.TypeCertification, cp.CertificationID)
}

func (s *CompanyCertificationStore) assign(m *models.CompanyCertification, cp *resource.CompanyCertificationPayload) {
	m.CompanyID = cp.CompanyID
	m.CertificationID = cp.CertificationID
	m.IssueDate = cp.IssueDate
	m.FirstSurveillanceDate = cp.FirstSurveillanceDate
	m.SecondSurveillanceDate = cp.SecondSurveillanceDate
	m.ExpiryDate = cp.ExpiryDate
	m.Status = cp.Status
	m.Notes = cp.Notes
}

// ======================================================
// COMPANY TRAINING
// ======================================================

type CompanyTrainingStore struct {
	baseStore[models.CompanyTraining]
}

var _ resource.Store = (*CompanyTrainingStore)(nil)

func NewCompanyTrainingStore(db *gorm.DB) *CompanyTrainingStore {
	return &CompanyTrainingStore{baseStore[models.CompanyTraining]{
		db:      db,
		typ:     resource.TypeCompanyTraining,
		orderBy: "training_date DESC",
	}}
}

func (s *CompanyTrainingStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.CompanyTrainingPayload{
		CompanyID:            m.CompanyID,
		TrainingID:           m.TrainingID,
		TrainingDate:         m.TrainingDate,
		NextRetrainingDate:   m.NextRetrainingDate,
		EmployeeCount:        m.EmployeeCount,
		Notes:                m.Notes,
		Status:               m.Status,
		TrainingMethod:       m.TrainingMethod,
		Trainer:              m.Trainer,
		CertificateIssued:    m.CertificateIssued,
		CertificateIssueDate: m.CertificateIssueDate,
	}, nil
}

func (s *CompanyTrainingStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	tp, ok := p.(*resource.CompanyTrainingPayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.checkParents(ctx, tp); err != nil {
		return 0, err
	}

	m := models.CompanyTraining{Code: newCode(companyTrainingCodePrefix)}
	s.assign(&m, tp)
	if err := s.conn(ctx).Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create company training")
	}
	return m.ID, nil
}

func (s *CompanyTrainingStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	tp, ok := p.(*resource.CompanyTrainingPayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.checkParents(ctx, tp); err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	s.assign(m, tp)
	return pkgerrors.Wrap(s.conn(ctx).Save(m).Error, "update company training")
}

func (s *CompanyTrainingStore) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteRow(ctx, id)
}

func (s *CompanyTrainingStore) checkParents(ctx context.Context, tp *resource.CompanyTrainingPayload) error {
	if err := requireRow(ctx, s.db, &models.Company{}, resource.TypeCompany, tp.CompanyID); err != nil {
		return err
	}
	return requireRow(ctx, s.db, &models.Training{}, resource.TypeTraining, tp.TrainingID)
}

func (s *CompanyTrainingStore) assign(m *models.CompanyTraining, tp *resource.CompanyTrainingPayload) {
	m.CompanyID = tp.CompanyID
	m.TrainingID = tp.TrainingID
	m.TrainingDate = tp.TrainingDate
	m.NextRetrainingDate = tp.NextRetrainingDate
	m.EmployeeCount = tp.EmployeeCount
	m.Notes = tp.Notes
	m.Status = tp.Status
	m.TrainingMethod = tp.TrainingMethod
	m.Trainer = tp.Trainer
	m.CertificateIssued = tp.CertificateIssued
	m.CertificateIssueDate = tp.CertificateIssueDate
}

// ======================================================
// PAGE
// ======================================================

type PageStore struct {
	baseStore[models.Page]
}

var _ resource.Store = (*PageStore)(nil)

func NewPageStore(db *gorm.DB) *PageStore {
	return &PageStore{baseStore[models.Page]{
		db:         db,
		typ:        resource.TypePage,
		nameColumn: "name",
		orderBy:    "name ASC",
	}}
}

func (s *PageStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.PagePayload{
		Name:           m.Name,
		Title:          m.Title,
		Body:           m.Body,
		SeoKeywords:    append([]string(nil), m.SeoKeywords...),
		SeoDescription: m.SeoDescription,
	}, nil
}

func (s *PageStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	pp, ok := p.(*resource.PagePayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.ensureNameFree(ctx, pp.Name, 0); err != nil {
		return 0, err
	}

	m := models.Page{}
	s.assign(&m, pp)
	if err := s.conn(ctx).Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create page")
	}
	return m.ID, nil
}

func (s *PageStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	pp, ok := p.(*resource.PagePayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, pp.Name, id); err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	s.assign(m, pp)
	return pkgerrors.Wrap(s.conn(ctx).Save(m).Error, "update page")
}

func (s *PageStore) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteRow(ctx, id)
}

func (s *PageStore) assign(m *models.Page, pp *resource.PagePayload) {
	m.Name = pp.Name
	m.Title = pp.Title
	m.Body = pp.Body
	m.SeoKeywords = pp.SeoKeywords
	m.SeoDescription = pp.SeoDescription
}
