package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/content"
	"hipaa_training_backend/internal/controller"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/internal/service"
	"hipaa_training_backend/pkg/crypto"
	"hipaa_training_backend/pkg/database"
	"hipaa_training_backend/pkg/logger"
	"hipaa_training_backend/pkg/monitoring"
	"hipaa_training_backend/pkg/security"
	"hipaa_training_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Content  *content.Store
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	progress    *repository.ProgressRepository
	certificate *repository.CertificateRepository
	audit       *repository.AuditRepository
}

type services struct {
	audit       *service.AuditService
	auth        *service.AuthService
	certificate *service.CertificateService
	training    *service.TrainingService
	checklist   *service.ChecklistService
	evidence    *service.EvidenceService
	report      *service.ReportService
}

type controllers struct {
	auth        *controller.AuthController
	training    *controller.TrainingController
	checklist   *controller.ChecklistController
	certificate *controller.CertificateController
	report      *controller.ReportController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		progress:    repository.NewProgressRepository(db),
		certificate: repository.NewCertificateRepository(db),
		audit:       repository.NewAuditRepository(db),
	}
}

func (a *App) initServices(repos *repositories, store *content.Store, cipher *crypto.Cipher, cfg *config.Config) *services {
	s := &services{}

	s.audit = service.NewAuditService(repos.audit, cfg)
	s.auth = service.NewAuthService(repos.user, s.audit, cipher, cfg)
	s.certificate = service.NewCertificateService(repos.certificate, s.audit, cfg)
	s.training = service.NewTrainingService(store, repos.progress, s.certificate, s.audit, cipher, cfg)
	s.checklist = service.NewChecklistService(store, repos.progress, s.audit, cipher, cfg)
	s.evidence = service.NewEvidenceService(s.audit, cipher, cfg)
	s.report = service.NewReportService(store, repos.user, repos.progress, repos.certificate, s.audit, cfg)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, cfg *config.Config, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		training:    controller.NewTrainingController(s.training, s.auth),
		checklist:   controller.NewChecklistController(s.checklist, s.evidence, cfg),
		certificate: controller.NewCertificateController(s.certificate, s.auth),
		report:      controller.NewReportController(s.report, s.audit, s.auth, repos.user),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ReloadConfig applies the hot-swappable parts of a freshly loaded config:
// grading thresholds and lockout policy. Server address, database path and
// encryption keys require a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config.Training = cfg.Training
	a.Config.Security.MaxFailedAttempts = cfg.Security.MaxFailedAttempts
	a.Config.Security.LockoutMinutes = cfg.Security.LockoutMinutes
	a.Config.Security.AuditRetentionDays = cfg.Security.AuditRetentionDays
	logger.Log.Info("Configuration reloaded",
		zap.Float64("pass_threshold", cfg.Training.PassThreshold),
		zap.Int("cert_validity_days", cfg.Training.CertValidityDays))
}

// startBackgroundTasks runs the daily audit retention purge.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			if _, err := s.audit.PurgeExpired(); err != nil {
				logger.Log.Error("audit retention purge error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	store, err := content.Load(cfg.Content.Dir, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to load training content", zap.Error(err))
	}

	cipher, err := crypto.New(cfg.Security.EncryptionKey, cfg.Security.EncryptionSalt)
	if err != nil {
		logger.Log.Fatal("Failed to initialize field encryption", zap.Error(err))
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Content: store,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, store, cipher, cfg)
	app.services = services
	controllers := app.initControllers(services, repos, cfg, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hipaa-training", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
