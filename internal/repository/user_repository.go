package repository

import (
	"hipaa_training_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint, when time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", when).
		Error
}

func (r *UserRepository) List(offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	if err := r.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.DB.Order("id").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) CountAll() (int64, error) {
	var total int64
	err := r.DB.Model(&model.User{}).Count(&total).Error
	return total, err
}

// RecordFailedLogin stores one failed attempt for the lockout window.
func (r *UserRepository) RecordFailedLogin(username, ipAddress string) error {
	return r.DB.Create(&model.LoginAttempt{
		Username:  username,
		IPAddress: ipAddress,
	}).Error
}

// FailedLoginsSince counts failed attempts for a username inside the lockout
// window.
func (r *UserRepository) FailedLoginsSince(username string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LoginAttempt{}).
		Where("username = ? AND created_at >= ?", username, since).
		Count(&count).Error
	return count, err
}

// ClearFailedLogins removes the attempt rows after a successful login.
func (r *UserRepository) ClearFailedLogins(username string) error {
	return r.DB.Where("username = ?", username).Delete(&model.LoginAttempt{}).Error
}
