package service

import (
	"fmt"
	"time"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/internal/util"
	"hipaa_training_backend/pkg/crypto"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Audit    *AuditService
	Cipher   *crypto.Cipher
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, audit *AuditService, cipher *crypto.Cipher, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Audit:    audit,
		Cipher:   cipher,
		Cfg:      cfg,
	}
}

// Register creates a new account. Identity fields are sanitized before they
// touch the database; the role must be one of the known three.
func (s *AuthService) Register(user *model.User, ipAddress string) error {
	user.Username = util.SanitizeInput(user.Username, 50)
	user.FullName = util.SanitizeInput(user.FullName, 100)
	user.Facility = util.SanitizeInput(user.Facility, 200)

	if user.Username == "" || user.FullName == "" {
		return util.ErrEmptyUserFields
	}
	if user.Role == "" {
		user.Role = model.Staff
	}
	if !model.ValidRole(user.Role) {
		return util.ErrInvalidRole
	}

	_, err := s.UserRepo.FindByUsername(user.Username)
	if err == nil {
		return util.ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if err := s.UserRepo.Create(user); err != nil {
		return err
	}
	s.Audit.Record(user.ID, model.ActionUserCreated,
		fmt.Sprintf("username=%s role=%s", user.Username, user.Role), ipAddress)
	return nil
}

// Login verifies credentials under the brute-force lockout policy: too many
// failures inside the window lock the account until the window passes.
// Accounts with MFA enabled must also present a valid authenticator code.
func (s *AuthService) Login(username, password, mfaCode, ipAddress string) (string, *model.User, error) {
	username = util.SanitizeInput(username, 50)

	window := time.Duration(s.Cfg.Security.LockoutMinutes) * time.Minute
	failures, err := s.UserRepo.FailedLoginsSince(username, time.Now().Add(-window))
	if err != nil {
		return "", nil, err
	}
	if failures >= int64(s.Cfg.Security.MaxFailedAttempts) {
		s.Audit.Record(0, model.ActionLockout, "username="+username, ipAddress)
		return "", nil, util.ErrAccountLocked
	}

	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		s.recordFailure(username, ipAddress)
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		s.Audit.Record(user.ID, model.ActionLoginFailed, "account disabled", ipAddress)
		return "", nil, util.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.recordFailure(username, ipAddress)
		return "", nil, util.ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if mfaCode == "" {
			return "", nil, util.ErrMFARequired
		}
		secret, err := s.Cipher.DecryptString(user.MFASecret)
		if err != nil {
			return "", nil, err
		}
		if !totp.Validate(mfaCode, secret) {
			s.recordFailure(username, ipAddress)
			s.Audit.Record(user.ID, model.ActionMFAFailed, "username="+username, ipAddress)
			return "", nil, util.ErrInvalidMFACode
		}
	}

	if err := s.UserRepo.ClearFailedLogins(username); err != nil {
		return "", nil, err
	}
	if err := s.UserRepo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	s.Audit.Record(user.ID, model.ActionLogin, "username="+username, ipAddress)
	return token, user, nil
}

func (s *AuthService) recordFailure(username, ipAddress string) {
	if err := s.UserRepo.RecordFailedLogin(username, ipAddress); err == nil {
		s.Audit.Record(0, model.ActionLoginFailed, "username="+username, ipAddress)
	}
}

// MFAEnrollment carries the TOTP secret and otpauth provisioning URL back to
// the client; the URL is what enrollment QR codes encode.
type MFAEnrollment struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// SetupMFA generates a TOTP secret for the account and stores it encrypted.
// MFA does not gate logins until the account confirms a code via VerifyMFA.
func (s *AuthService) SetupMFA(user *model.User, ipAddress string) (*MFAEnrollment, error) {
	if user.MFAEnabled {
		return nil, util.ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "HIPAA Training",
		AccountName: user.Username,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := s.Cipher.EncryptString(key.Secret())
	if err != nil {
		return nil, err
	}
	user.MFASecret = encrypted
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return &MFAEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// VerifyMFA confirms enrollment with a code from the authenticator and turns
// the login gate on.
func (s *AuthService) VerifyMFA(user *model.User, code, ipAddress string) error {
	if user.MFAEnabled {
		return util.ErrMFAAlreadyEnabled
	}
	if user.MFASecret == "" {
		return util.ErrMFANotConfigured
	}

	secret, err := s.Cipher.DecryptString(user.MFASecret)
	if err != nil {
		return err
	}
	if !totp.Validate(code, secret) {
		s.Audit.Record(user.ID, model.ActionMFAFailed, "enrollment verification", ipAddress)
		return util.ErrInvalidMFACode
	}

	user.MFAEnabled = true
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}
	s.Audit.Record(user.ID, model.ActionMFAEnabled, "username="+user.Username, ipAddress)
	return nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}
	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		// A valid token for a removed account must not yield a zero user.
		return nil
	}
	return user
}

func (s *AuthService) ListUsers(page, pageSize int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.List((page-1)*pageSize, pageSize)
}
