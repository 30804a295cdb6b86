package repository

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// ======================================================
// FIELD
// ======================================================

type FieldStore struct {
	baseStore[models.Field]
}

var _ resource.Store = (*FieldStore)(nil)

func NewFieldStore(db *gorm.DB) *FieldStore {
	return &FieldStore{baseStore[models.Field]{
		db:         db,
		typ:        resource.TypeField,
		nameColumn: "name",
		orderBy:    "name ASC",
		guards: []refGuard{
			{table: "certification_fields", column: "field_id", label: "certification(s)"},
			{table: "training_fields", column: "field_id", label: "training(s)"},
			{table: "company_fields", column: "field_id", label: "company(ies)"},
		},
	}}
}

func (s *FieldStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.FieldPayload{Name: m.Name, Description: m.Description}, nil
}

func (s *FieldStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	fp, ok := p.(*resource.FieldPayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.ensureNameFree(ctx, fp.Name, 0); err != nil {
		return 0, err
	}

	m := models.Field{Name: fp.Name, Description: fp.Description}
	if err := s.conn(ctx).Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create field")
	}
	return m.ID, nil
}

func (s *FieldStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	fp, ok := p.(*resource.FieldPayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, fp.Name, id); err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	m.Name = fp.Name
	m.Description = fp.Description
	return pkgerrors.Wrap(s.conn(ctx).Save(m).Error, "update field")
}

func (s *FieldStore) DeleteByID(ctx context.Context, id uint) error {
	return s.deleteRow(ctx, id)
}

// ======================================================
// CERTIFICATION
// ======================================================

type CertificationStore struct {
	baseStore[models.Certification]
}

var _ resource.Store = (*CertificationStore)(nil)

func NewCertificationStore(db *gorm.DB) *CertificationStore {
	return &CertificationStore{baseStore[models.Certification]{
		db:         db,
		typ:        resource.TypeCertification,
		nameColumn: "name",
		orderBy:    "name ASC",
		preloads:   []string{"Fields"},
		guards: []refGuard{
			{table: "company_certifications", column: "certification_id", label: "company certification(s)"},
		},
	}}
}

func (s *CertificationStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.CertificationPayload{
		Name:              m.Name,
		ShortDescription:  m.ShortDescription,
		Description:       m.Description,
		CertificationType: m.CertificationType,
		CallToAction:      m.CallToAction,
		Fields:            fieldIDs(m.Fields),
		DurationInMonths:  m.DurationInMonths,
	}, nil
}

func (s *CertificationStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	cp, ok := p.(*resource.CertificationPayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.ensureNameFree(ctx, cp.Name, 0); err != nil {
		return 0, err
	}
	fields, err := loadFields(ctx, s.db, cp.Fields)
	if err != nil {
		return 0, err
	}

	m := models.Certification{Fields: fields}
	s.assign(&m, cp)
	if err := s.conn(ctx).Omit("Fields.*").Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create certification")
	}
	return m.ID, nil
}

func (s *CertificationStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	cp, ok := p.(*resource.CertificationPayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, cp.Name, id); err != nil {
		return err
	}
	fields, err := loadFields(ctx, s.db, cp.Fields)
	if err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	s.assign(m, cp)
	if err := s.conn(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return pkgerrors.Wrap(err, "update certification")
	}
	return pkgerrors.Wrap(
		s.conn(ctx).Model(m).Association("Fields").Replace(fields),
		"replace certification fields",
	)
}

func (s *CertificationStore) assign(m *models.Certification, cp *resource.CertificationPayload) {
	m.Name = cp.Name
	m.ShortDescription = cp.ShortDescription
	m.Description = cp.Description
	m.CertificationType = cp.CertificationType
	m.CallToAction = cp.CallToAction
	m.DurationInMonths = cp.DurationInMonths
}

func (s *CertificationStore) DeleteByID(ctx context.Context, id uint) error {
	return deleteWithFields(ctx, &s.baseStore, id, &models.Certification{ID: id})
}

// ======================================================
// TRAINING
// ======================================================

type TrainingStore struct {
	baseStore[models.Training]
}

var _ resource.Store = (*TrainingStore)(nil)

func NewTrainingStore(db *gorm.DB) *TrainingStore {
	return &TrainingStore{baseStore[models.Training]{
		db:         db,
		typ:        resource.TypeTraining,
		nameColumn: "name",
		orderBy:    "name ASC",
		preloads:   []string{"Fields"},
		guards: []refGuard{
			{table: "company_trainings", column: "training_id", label: "company training(s)"},
		},
	}}
}

func (s *TrainingStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.TrainingPayload{
		Name:            m.Name,
		Description:     m.Description,
		TrainingType:    m.TrainingType,
		TrainingMethod:  append([]string(nil), m.TrainingMethod...),
		Fields:          fieldIDs(m.Fields),
		DurationInHours: m.DurationInHours,
	}, nil
}

func (s *TrainingStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	tp, ok := p.(*resource.TrainingPayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.ensureNameFree(ctx, tp.Name, 0); err != nil {
		return 0, err
	}
	fields, err := loadFields(ctx, s.db, tp.Fields)
	if err != nil {
		return 0, err
	}

	m := models.Training{Fields: fields}
	s.assign(&m, tp)
	if err := s.conn(ctx).Omit("Fields.*").Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create training")
	}
	return m.ID, nil
}

func (s *TrainingStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	tp, ok := p.(*resource.TrainingPayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, tp.Name, id); err != nil {
		return err
	}
	fields, err := loadFields(ctx, s.db, tp.Fields)
	if err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	s.assign(m, tp)
	if err := s.conn(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return pkgerrors.Wrap(err, "update training")
	}
	return pkgerrors.Wrap(
		s.conn(ctx).Model(m).Association("Fields").Replace(fields),
		"replace training fields",
	)
}

func (s *TrainingStore) assign(m *models.Training, tp *resource.TrainingPayload) {
	m.Name = tp.Name
	m.Description = tp.Description
	m.TrainingType = tp.TrainingType
	m.TrainingMethod = tp.TrainingMethod
	m.DurationInHours = tp.DurationInHours
}

func (s *TrainingStore) DeleteByID(ctx context.Context, id uint) error {
	return deleteWithFields(ctx, &s.baseStore, id, &models.Training{ID: id})
}

// ======================================================
// COMPANY
// ======================================================

type CompanyStore struct {
	baseStore[models.Company]
}

var _ resource.Store = (*CompanyStore)(nil)

func NewCompanyStore(db *gorm.DB) *CompanyStore {
	return &CompanyStore{baseStore[models.Company]{
		db:         db,
		typ:        resource.TypeCompany,
		nameColumn: "name",
		orderBy:    "name ASC",
		preloads:   []string{"Fields"},
		guards: []refGuard{
			{table: "company_certifications", column: "company_id", label: "company certification(s)"},
			{table: "company_trainings", column: "company_id", label: "company training(s)"},
		},
	}}
}

func (s *CompanyStore) Load(ctx context.Context, id uint) (resource.Payload, error) {
	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &resource.CompanyPayload{
		Name:          m.Name,
		OriginCountry: m.OriginCountry,
		Category:      m.Category,
		EmployeeCount: m.EmployeeCount,
		Scope:         m.Scope,
		Fields:        fieldIDs(m.Fields),
		Email:         m.Email,
		Phone:         m.Phone,
		Address: resource.AddressPayload{
			Street:     m.Address.Street,
			City:       m.Address.City,
			PostalCode: m.Address.PostalCode,
			Country:    m.Address.Country,
		},
	}, nil
}

func (s *CompanyStore) Create(ctx context.Context, p resource.Payload) (uint, error) {
	cp, ok := p.(*resource.CompanyPayload)
	if !ok {
		return 0, payloadMismatch(s.typ, p)
	}
	if err := s.ensureNameFree(ctx, cp.Name, 0); err != nil {
		return 0, err
	}
	fields, err := loadFields(ctx, s.db, cp.Fields)
	if err != nil {
		return 0, err
	}

	m := models.Company{Fields: fields}
	s.assign(&m, cp)
	if err := s.conn(ctx).Omit("Fields.*").Create(&m).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "create company")
	}
	return m.ID, nil
}

func (s *CompanyStore) UpdateByID(ctx context.Context, id uint, p resource.Payload) error {
	cp, ok := p.(*resource.CompanyPayload)
	if !ok {
		return payloadMismatch(s.typ, p)
	}
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.ensureNameFree(ctx, cp.Name, id); err != nil {
		return err
	}
	fields, err := loadFields(ctx, s.db, cp.Fields)
	if err != nil {
		return err
	}

	m, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	s.assign(m, cp)
	if err := s.conn(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return pkgerrors.Wrap(err, "update company")
	}
	return pkgerrors.Wrap(
		s.conn(ctx).Model(m).Association("Fields").Replace(fields),
		"replace company fields",
	)
}

func (s *CompanyStore) assign(m *models.Company, cp *resource.CompanyPayload) {
	m.Name = cp.Name
	m.OriginCountry = cp.OriginCountry
	m.Category = cp.Category
	m.EmployeeCount = cp.EmployeeCount
	m.Scope = cp.Scope
	m.Email = cp.Email
	m.Phone = cp.Phone
	m.Address = models.Address{
		Street:     cp.Address.Street,
		City:       cp.Address.City,
		PostalCode: cp.Address.PostalCode,
		Country:    cp.Address.Country,
	}
}

func (s *CompanyStore) DeleteByID(ctx context.Context, id uint) error {
	return deleteWithFields(ctx, &s.baseStore, id, &models.Company{ID: id})
}

// deleteWithFields clears the many2many field links before removing the row.
func deleteWithFields[M any](ctx context.Context, s *baseStore[M], id uint, owner *M) error {
	if err := s.lock(ctx, id); err != nil {
		return err
	}
	if err := s.guardReferences(ctx, id); err != nil {
		return err
	}
	if err := s.conn(ctx).Model(owner).Association("Fields").Clear(); err != nil {
		return pkgerrors.Wrapf(err, "clear %s fields", s.typ)
	}
	if err := s.conn(ctx).Delete(owner).Error; err != nil {
		return pkgerrors.Wrapf(err, "delete %s", s.typ)
	}
	return nil
}
