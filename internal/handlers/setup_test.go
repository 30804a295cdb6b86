package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/infra/lock"
	"github.com/BruksfildServices01/certhub/internal/infra/repository"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	"github.com/BruksfildServices01/certhub/internal/models"
	"github.com/BruksfildServices01/certhub/internal/testutil"
	ucPending "github.com/BruksfildServices01/certhub/internal/usecase/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/validators"
)

const testSecret = "test-secret"

// mxOnly accepts mail for example.com only.
type mxOnly struct{}

func (mxOnly) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if name == "example.com" {
		return []*net.MX{{Host: "mx.example.com", Pref: 10}}, nil
	}
	return nil, errors.New("no mx")
}

func (mxOnly) LookupIPAddr(context.Context, string) ([]net.IPAddr, error) {
	return nil, errors.New("no host")
}

type server struct {
	db     *gorm.DB
	router *gin.Engine

	user  *models.User
	other *models.User
	admin *models.User
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:       testSecret,
		TokenTTL:        time.Hour,
		DefaultPageSize: 10,
		MaxPageSize:     50,
	}

	db := testutil.NewDB(t)
	repo := repository.NewPendingActionGormRepository(db)
	tx := repository.NewGormTransactor(db)
	registry, err := resource.NewRegistry(repository.NewResourceStores(db)...)
	require.NoError(t, err)

	submit := ucPending.NewSubmitPendingAction(repo, registry, tx, lock.NewLocalLocker(), nil)
	review := ucPending.NewReviewPendingAction(repo, registry, tx, nil)
	cancel := ucPending.NewCancelPendingAction(repo, tx, nil)
	list := ucPending.NewListPendingActions(repo, cfg.DefaultPageSize, cfg.MaxPageSize)
	get := ucPending.NewGetPendingAction(repo)

	auth := NewAuthHandler(db, cfg, validators.NewEmailDomainChecker(mxOnly{}), nil)
	me := NewMeHandler(db, repo)
	pending := NewPendingActionHandler(submit, list, get, cancel)
	adminPending := NewAdminPendingActionHandler(list, get, review)
	resources := NewResourceHandler(registry, cfg)
	auditLogs := NewAuditLogsHandler(db, cfg)
	verify := NewVerificationHandler(repository.NewCompanyCertificationStore(db), repository.NewCompanyTrainingStore(db))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", auth.Login)
	api.GET("/company-certifications/verify/:certificationId", verify.VerifyCertification)
	api.GET("/company-trainings/verify/:trainingId", verify.VerifyTraining)

	secured := api.Group("/", middleware.AuthMiddleware(cfg))
	secured.GET("/me", me.GetMe)
	secured.POST("/pending-actions", pending.Submit)
	secured.GET("/pending-actions", pending.ListMine)
	secured.GET("/pending-actions/:id", pending.GetMine)
	secured.DELETE("/pending-actions/:id", pending.Cancel)
	for _, typ := range resource.Types() {
		base := "/" + typ.Slug() + "/requests"
		secured.POST(base, pending.SubmitFor(typ, resource.OpCreate))
		secured.PUT(base+"/:id", pending.SubmitFor(typ, resource.OpUpdate))
		secured.DELETE(base+"/:id", pending.SubmitFor(typ, resource.OpDelete))
	}
	secured.GET("/resources/:type", resources.List)
	secured.GET("/resources/:type/:id", resources.Get)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.POST("/users", auth.CreateUser)
	admin.GET("/users", auth.ListUsers)
	admin.GET("/users/:userId", auth.GetUser)
	admin.PATCH("/users/:userId", auth.UpdateUser)
	admin.GET("/pending-actions", adminPending.List)
	admin.GET("/pending-actions/:id", adminPending.Get)
	admin.PUT("/pending-actions/:id/:decision", adminPending.Review)
	admin.GET("/audit-logs", auditLogs.List)

	return &server{
		db:     db,
		router: r,
		user:   testutil.SeedUser(t, db, "user@example.com", models.RoleUser),
		other:  testutil.SeedUser(t, db, "other@example.com", models.RoleUser),
		admin:  testutil.SeedUser(t, db, "admin@example.com", models.RoleAdmin),
	}
}

func tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

// do sends body (marshalled unless it is already a string) as u.
func (s *server) do(t *testing.T, u *models.User, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, u))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(decode(t, w).Data, into), w.Body.String())
}

type listData[T any] struct {
	Items      []T `json:"items"`
	Pagination struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
}

type summary struct {
	ID           uint   `json:"id"`
	ActionType   string `json:"actionType"`
	ResourceType string `json:"resourceType"`
	ResourceID   *uint  `json:"resourceId"`
	Status       string `json:"status"`
}

// submitField files a Field create request as u and returns its id.
func (s *server) submitField(t *testing.T, u *models.User, name string) uint {
	t.Helper()
	w := s.do(t, u, http.MethodPost, "/api/fields/requests", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sm summary
	decodeData(t, w, &sm)
	return sm.ID
}

func actionPath(id uint) string {
	return fmt.Sprintf("/api/pending-actions/%d", id)
}

func reviewPath(id uint, decision string) string {
	return fmt.Sprintf("/api/admin/pending-actions/%d/%s", id, decision)
}
