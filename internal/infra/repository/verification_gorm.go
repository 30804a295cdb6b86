package repository

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/models"
)

// FindByCode loads the certification record issued under code together with
// its company and certification.
func (s *CompanyCertificationStore) FindByCode(
	ctx context.Context,
	code string,
) (*models.CompanyCertificationDetail, error) {

	var d models.CompanyCertificationDetail
	if err := firstByCode(s.conn(ctx), &d.Record, code); err != nil {
		return nil, err
	}
	if err := s.conn(ctx).First(&d.Company, d.Record.CompanyID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load certified company")
	}
	if err := s.conn(ctx).First(&d.Certification, d.Record.CertificationID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load certification")
	}
	return &d, nil
}

// FindByCode loads the training record issued under code together with its
// company and training.
func (s *CompanyTrainingStore) FindByCode(
	ctx context.Context,
	code string,
) (*models.CompanyTrainingDetail, error) {

	var d models.CompanyTrainingDetail
	if err := firstByCode(s.conn(ctx), &d.Record, code); err != nil {
		return nil, err
	}
	if err := s.conn(ctx).First(&d.Company, d.Record.CompanyID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load trained company")
	}
	if err := s.conn(ctx).First(&d.Training, d.Record.TrainingID).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load training")
	}
	return &d, nil
}

func firstByCode(q *gorm.DB, into any, code string) error {
	err := q.Where("code = ?", code).First(into).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusinessf(httperr.CodeNotFound, "no record issued under %s", code)
	}
	return pkgerrors.Wrapf(err, "find record %s", code)
}
