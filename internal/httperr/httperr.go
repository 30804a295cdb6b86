package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/certhub/internal/logging"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

var statusByCode = map[string]int{
	CodeValidation:          http.StatusBadRequest,
	CodeUnknownResourceType: http.StatusBadRequest,
	CodeResourceNotFound:    http.StatusNotFound,
	CodeNotFound:            http.StatusNotFound,
	CodeForbidden:           http.StatusForbidden,
	CodeDuplicatePending:    http.StatusConflict,
	CodeNameInUse:           http.StatusConflict,
	CodePendingNameConflict: http.StatusConflict,
	CodeAlreadyProcessed:    http.StatusConflict,
	CodeReferenceInUse:      http.StatusConflict,
}

// StatusFor returns the HTTP status for a business code. Unknown codes are 422.
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusUnprocessableEntity
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// FromError writes err as a JSON error. Business errors keep their code; any
// other error is logged and reported as internal_error.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		c.JSON(StatusFor(be.Code), HTTPError{Code: be.Code, Message: msg, Details: be.Details})
		return
	}

	logging.Log.WithError(err).
		WithField("path", c.FullPath()).
		Error("request failed")
	Internal(c, "internal_error", "unexpected error")
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}
