package controller

import (
	"errors"

	"hipaa_training_backend/internal/model"
	"hipaa_training_backend/internal/service"
	"hipaa_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	FullName string `json:"fullName" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin staff auditor"`
	Facility string `json:"facility" binding:"max=200"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a staff, auditor or admin account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Account details"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "Username already taken"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
		Facility: req.Facility,
	}

	if err := c.AuthService.Register(user, ctx.ClientIP()); err != nil {
		switch {
		case errors.Is(err, util.ErrUsernameTaken):
			util.Error(ctx, 409, "Username is already taken")
		case errors.Is(err, util.ErrEmptyUserFields), errors.Is(err, util.ErrInvalidRole):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID, "username": user.Username})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	MFACode  string `json:"mfaCode" binding:"omitempty,len=6"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT. Accounts lock after too many failed attempts.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "Invalid credentials"
// @Failure 423 {object} util.Response "Account locked"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Username, req.Password, req.MFACode, ctx.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAccountLocked):
			util.Error(ctx, 423, "Account temporarily locked, try again later")
		case errors.Is(err, util.ErrAccountDisabled):
			util.Error(ctx, 403, "Account is disabled")
		case errors.Is(err, util.ErrMFARequired):
			util.Error(ctx, 401, "Multi-factor authentication code required")
		case errors.Is(err, util.ErrInvalidMFACode):
			util.Error(ctx, 401, "Invalid multi-factor authentication code")
		case errors.Is(err, util.ErrInvalidCredentials):
			util.Error(ctx, 401, "Invalid username or password")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"fullName": user.FullName,
			"role":     user.Role,
		},
	})
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// SetupMFA godoc
// @Summary Begin MFA enrollment
// @Description Generates a TOTP secret and otpauth URL for the current account
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.MFAEnrollment}
// @Failure 409 {object} util.Response "MFA already enabled"
// @Router /api/mfa/setup [post]
func (c *AuthController) SetupMFA(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.AuthService.SetupMFA(user, ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrMFAAlreadyEnabled) {
			util.Error(ctx, 409, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// swagger:model VerifyMFARequest
type VerifyMFARequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// VerifyMFA godoc
// @Summary Confirm MFA enrollment
// @Description Validates an authenticator code and enables MFA on the account
// @Tags auth
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body VerifyMFARequest true "Authenticator code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Invalid code or no pending enrollment"
// @Router /api/mfa/verify [post]
func (c *AuthController) VerifyMFA(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req VerifyMFARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.VerifyMFA(user, req.Code, ctx.ClientIP()); err != nil {
		switch {
		case errors.Is(err, util.ErrMFAAlreadyEnabled):
			util.Error(ctx, 409, err.Error())
		case errors.Is(err, util.ErrMFANotConfigured), errors.Is(err, util.ErrInvalidMFACode):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"mfaEnabled": true})
}

// ListUsers godoc
// @Summary List accounts
// @Tags auth
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response
// @Router /api/admin/users [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	page := int(util.MustParseUint(ctx.DefaultQuery("page", "1")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "20")))

	users, total, err := c.AuthService.ListUsers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
