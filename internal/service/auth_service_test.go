package service

import (
	"net/http/httptest"
	"testing"
	"time"

	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSanitizesFields(t *testing.T) {
	env := newTestEnv(t)

	user := &model.User{
		Username: "jdoe<script>",
		FullName: "Jane; DROP TABLE--",
		Password: "Str0ngPass!",
		Facility: "Main St. Pharmacy",
	}
	require.NoError(t, env.auth.Register(user, "127.0.0.1"))

	assert.Equal(t, "jdoescript", user.Username)
	assert.Equal(t, "Jane DROP TABLE", user.FullName)
	assert.Equal(t, "Main St Pharmacy", user.Facility)
	assert.Equal(t, model.Staff, user.Role)
	assert.NotEqual(t, "Str0ngPass!", user.Password)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	err := env.auth.Register(&model.User{Username: "", FullName: "X", Password: "p"}, "")
	assert.ErrorIs(t, err, util.ErrEmptyUserFields)

	err = env.auth.Register(&model.User{Username: "u", FullName: "X", Password: "p", Role: "superuser"}, "")
	assert.ErrorIs(t, err, util.ErrInvalidRole)

	env.newUser(t, "taken")
	err = env.auth.Register(&model.User{Username: "taken", FullName: "X", Password: "p"}, "")
	assert.ErrorIs(t, err, util.ErrUsernameTaken)
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "jdoe")

	token, user, err := env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "jdoe", user.Username)
	assert.False(t, user.LastLogin.IsZero())

	claims, err := util.ParseJWT(token, env.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Staff, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "jdoe")

	_, _, err := env.auth.Login("jdoe", "wrong", "", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	// Unknown users get the same error as wrong passwords.
	_, _, err = env.auth.Login("nobody", "wrong", "", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "jdoe")

	for i := 0; i < env.cfg.Security.MaxFailedAttempts; i++ {
		_, _, err := env.auth.Login("jdoe", "wrong", "", "127.0.0.1")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	}

	// The correct password is rejected too while locked.
	_, _, err := env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrAccountLocked)

	// The lockout lands in the audit trail.
	entries, err := env.audit.Query(repository.AuditFilter{Action: model.ActionLockout})
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestLoginClearsFailuresOnSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.newUser(t, "jdoe")

	for i := 0; i < env.cfg.Security.MaxFailedAttempts-1; i++ {
		env.auth.Login("jdoe", "wrong", "", "127.0.0.1")
	}
	_, _, err := env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	require.NoError(t, err)

	// The slate is clean; old failures no longer count toward lockout.
	for i := 0; i < env.cfg.Security.MaxFailedAttempts-1; i++ {
		env.auth.Login("jdoe", "wrong", "", "127.0.0.1")
	}
	_, _, err = env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	assert.NoError(t, err)
}

func TestLoginDisabledAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	user.Disabled = true
	require.NoError(t, env.users.Update(user))

	_, _, err := env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrAccountDisabled)
}

func TestMFAEnrollmentAndLoginGate(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	enrollment, err := env.auth.SetupMFA(user, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, enrollment.Secret)
	assert.Contains(t, enrollment.URL, "otpauth://totp/")

	// The stored secret is ciphertext, never the shared secret itself.
	stored, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.MFASecret)
	assert.NotEqual(t, enrollment.Secret, stored.MFASecret)
	assert.False(t, stored.MFAEnabled)

	// Logins are not gated until enrollment is confirmed.
	_, _, err = env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	require.NoError(t, err)

	// A malformed code cannot confirm enrollment.
	err = env.auth.VerifyMFA(stored, "12345", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrInvalidMFACode)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, env.auth.VerifyMFA(stored, code, "127.0.0.1"))
	assert.True(t, stored.MFAEnabled)

	// Password alone no longer logs in.
	_, _, err = env.auth.Login("jdoe", "Str0ngPass!", "", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrMFARequired)

	_, _, err = env.auth.Login("jdoe", "Str0ngPass!", "12345", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrInvalidMFACode)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	token, _, err := env.auth.Login("jdoe", "Str0ngPass!", code, "127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Re-enrollment is rejected once MFA is on.
	_, err = env.auth.SetupMFA(stored, "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrMFAAlreadyEnabled)

	// Enablement lands in the audit trail.
	entries, err := env.audit.Query(repository.AuditFilter{Action: model.ActionMFAEnabled})
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestVerifyMFAWithoutEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	err := env.auth.VerifyMFA(user, "123456", "127.0.0.1")
	assert.ErrorIs(t, err, util.ErrMFANotConfigured)
}

func TestGetCurrentUserRemovedAccount(t *testing.T) {
	env := newTestEnv(t)
	user := env.newUser(t, "jdoe")

	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Set("user", &util.Claims{UserID: user.ID})
	require.NotNil(t, env.auth.GetCurrentUser(ctx))

	// A token outliving its account must not resolve to a zero-value user.
	require.NoError(t, env.db.Unscoped().Delete(&model.User{}, user.ID).Error)
	assert.Nil(t, env.auth.GetCurrentUser(ctx))
}
