package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/certhub/internal/dto"
	"github.com/BruksfildServices01/certhub/internal/httperr"
	"github.com/BruksfildServices01/certhub/internal/httpresp"
	"github.com/BruksfildServices01/certhub/internal/models"
)

type certificationLookup interface {
	FindByCode(ctx context.Context, code string) (*models.CompanyCertificationDetail, error)
}

type trainingLookup interface {
	FindByCode(ctx context.Context, code string) (*models.CompanyTrainingDetail, error)
}

// VerificationHandler lets anyone check a certification or training code
// printed on a certificate. It needs no authentication.
type VerificationHandler struct {
	certifications certificationLookup
	trainings      trainingLookup
	now            func() time.Time
}

func NewVerificationHandler(certifications certificationLookup, trainings trainingLookup) *VerificationHandler {
	return &VerificationHandler{
		certifications: certifications,
		trainings:      trainings,
		now:            time.Now,
	}
}

func (h *VerificationHandler) VerifyCertification(c *gin.Context) {
	code, ok := verificationCode(c, "certificationId")
	if !ok {
		return
	}

	d, err := h.certifications.FindByCode(c.Request.Context(), code)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewCertificationVerification(d, h.now()))
}

func (h *VerificationHandler) VerifyTraining(c *gin.Context) {
	code, ok := verificationCode(c, "trainingId")
	if !ok {
		return
	}

	d, err := h.trainings.FindByCode(c.Request.Context(), code)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.NewTrainingVerification(d))
}

// verificationCode normalizes the code path parameter. Codes are issued in
// upper case.
func verificationCode(c *gin.Context, name string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(c.Param(name)))
	if code == "" || len(code) > 20 {
		httperr.BadRequest(c, httperr.CodeValidation, name+" is not a valid code")
		return "", false
	}
	return code, true
}
