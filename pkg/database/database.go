package database

import (
	"log"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.LoginAttempt{},
		&model.TrainingProgress{},
		&model.Certificate{},
		&model.AuditLog{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedAdminUser(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedAdminUser creates a bootstrap admin account on an empty database so the
// first operator can log in and create staff users.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username: "admin",
		FullName: "System Administrator",
		Password: string(hashed),
		Role:     model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Println("Seeded default admin account (username: admin) - change the password immediately")
	return nil
}
