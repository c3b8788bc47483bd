package service

import (
	"testing"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/content"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/pkg/crypto"
	"hipaa_training_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	db        *gorm.DB
	cfg       *config.Config
	store     *content.Store
	cipher    *crypto.Cipher
	users     *repository.UserRepository
	progress  *repository.ProgressRepository
	certs     *repository.CertificateRepository
	audit     *AuditService
	auth      *AuthService
	cert      *CertificateService
	training  *TrainingService
	checklist *ChecklistService
	report    *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.LoginAttempt{},
		&model.TrainingProgress{},
		&model.Certificate{},
		&model.AuditLog{},
	))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Security.MaxFailedAttempts = 5
	cfg.Security.LockoutMinutes = 15
	cfg.Security.AuditRetentionDays = 365 * 6
	cfg.Training.PassThreshold = 80
	cfg.Training.GoodThreshold = 60
	cfg.Training.MiniQuizPass = 70
	cfg.Training.CertValidityDays = 365
	cfg.Report.Dir = t.TempDir()
	cfg.Evidence.Dir = t.TempDir()
	cfg.Evidence.MaxSizeBytes = 5 * 1024 * 1024

	store, err := content.Load(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	cipher, err := crypto.New("test-passphrase", "test-salt")
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		cfg:      cfg,
		store:    store,
		cipher:   cipher,
		users:    repository.NewUserRepository(db),
		progress: repository.NewProgressRepository(db),
		certs:    repository.NewCertificateRepository(db),
	}
	env.audit = NewAuditService(repository.NewAuditRepository(db), cfg)
	env.auth = NewAuthService(env.users, env.audit, cipher, cfg)
	env.cert = NewCertificateService(env.certs, env.audit, cfg)
	env.training = NewTrainingService(store, env.progress, env.cert, env.audit, cipher, cfg)
	env.checklist = NewChecklistService(store, env.progress, env.audit, cipher, cfg)
	env.report = NewReportService(store, env.users, env.progress, env.certs, env.audit, cfg)
	return env
}

func (e *testEnv) newUser(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		FullName: "Test " + username,
		Password: "Str0ngPass!",
		Role:     model.Staff,
	}
	require.NoError(t, e.auth.Register(user, "127.0.0.1"))
	return user
}
