package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/certhub/internal/audit"
	"github.com/BruksfildServices01/certhub/internal/config"
	"github.com/BruksfildServices01/certhub/internal/domain/resource"
	"github.com/BruksfildServices01/certhub/internal/handlers"
	"github.com/BruksfildServices01/certhub/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/certhub/internal/infra/repository"
	"github.com/BruksfildServices01/certhub/internal/metrics"
	"github.com/BruksfildServices01/certhub/internal/middleware"
	ucPending "github.com/BruksfildServices01/certhub/internal/usecase/pendingaction"
	"github.com/BruksfildServices01/certhub/internal/validators"
)

// Deps are the process-wide singletons the routes are built on. Redis may
// be nil.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Audit  *audit.Dispatcher
	Config *config.Config
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	pendingRepo := infraRepo.NewPendingActionGormRepository(d.DB)
	transactor := infraRepo.NewGormTransactor(d.DB)
	submitLock := lock.New(d.Redis, cfg.SubmitLockTTL)

	registry, err := resource.NewRegistry(infraRepo.NewResourceStores(d.DB)...)
	if err != nil {
		return errors.Wrap(err, "build resource registry")
	}

	// ======================================================
	// USE CASES: PENDING ACTIONS
	// ======================================================
	submitUC := ucPending.NewSubmitPendingAction(
		pendingRepo,
		registry,
		transactor,
		submitLock,
		d.Audit,
	)

	reviewUC := ucPending.NewReviewPendingAction(
		pendingRepo,
		registry,
		transactor,
		d.Audit,
	)

	cancelUC := ucPending.NewCancelPendingAction(
		pendingRepo,
		transactor,
		d.Audit,
	)

	listUC := ucPending.NewListPendingActions(
		pendingRepo,
		cfg.DefaultPageSize,
		cfg.MaxPageSize,
	)

	getUC := ucPending.NewGetPendingAction(pendingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		d.DB,
		cfg,
		validators.NewEmailDomainChecker(nil),
		d.Audit,
	)
	meHandler := handlers.NewMeHandler(d.DB, pendingRepo)

	pendingHandler := handlers.NewPendingActionHandler(submitUC, listUC, getUC, cancelUC)
	adminPendingHandler := handlers.NewAdminPendingActionHandler(listUC, getUC, reviewUC)

	resourceHandler := handlers.NewResourceHandler(registry, cfg)
	verificationHandler := handlers.NewVerificationHandler(
		infraRepo.NewCompanyCertificationStore(d.DB),
		infraRepo.NewCompanyTrainingStore(d.DB),
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, cfg)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(cfg.MetricsPath, gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC VERIFICATION
		// ------------------------------
		api.GET("/company-certifications/verify/:certificationId", verificationHandler.VerifyCertification)
		api.GET("/company-trainings/verify/:trainingId", verificationHandler.VerifyTraining)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/pending-actions", pendingHandler.Submit)
			secured.GET("/pending-actions", pendingHandler.ListMine)
			secured.GET("/pending-actions/:id", pendingHandler.GetMine)
			secured.DELETE("/pending-actions/:id", pendingHandler.Cancel)

			// per-resource request routes, e.g. /api/fields/requests
			for _, t := range resource.Types() {
				base := "/" + t.Slug() + "/requests"
				secured.POST(base, pendingHandler.SubmitFor(t, resource.OpCreate))
				secured.PUT(base+"/:id", pendingHandler.SubmitFor(t, resource.OpUpdate))
				secured.DELETE(base+"/:id", pendingHandler.SubmitFor(t, resource.OpDelete))
			}

			secured.GET("/resources/:type", resourceHandler.List)
			secured.GET("/resources/:type/:id", resourceHandler.Get)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly())
		{
			admin.POST("/users", authHandler.CreateUser)
			admin.GET("/users", authHandler.ListUsers)
			admin.GET("/users/:userId", authHandler.GetUser)
			admin.PATCH("/users/:userId", authHandler.UpdateUser)

			admin.GET("/pending-actions", adminPendingHandler.List)
			admin.GET("/pending-actions/:id", adminPendingHandler.Get)
			admin.PUT("/pending-actions/:id/:decision", adminPendingHandler.Review)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
