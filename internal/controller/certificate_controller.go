package controller

import (
	"errors"
	"net/http"

	"hipaa_training_backend/internal/service"
	"hipaa_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertService *service.CertificateService
	AuthService *service.AuthService
}

func NewCertificateController(certService *service.CertificateService, authService *service.AuthService) *CertificateController {
	return &CertificateController{CertService: certService, AuthService: authService}
}

// List godoc
// @Summary List the caller's certificates
// @Tags certificates
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates [get]
func (c *CertificateController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certs, err := c.CertService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Verify godoc
// @Summary Verify a certificate
// @Description Public endpoint. Returns lifecycle state (active, expired, revoked) for a certificate ID.
// @Tags certificates
// @Produce  json
// @Param   id path string true "Certificate ID"
// @Success 200 {object} util.Response{data=service.VerificationResult}
// @Failure 404 {object} util.Response
// @Router /api/certificates/{id}/verify [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	result, err := c.CertService.Verify(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCertNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Download godoc
// @Summary Download a certificate as text
// @Tags certificates
// @Produce  text/plain
// @Security BearerAuth
// @Param   id path string true "Certificate ID"
// @Success 200 {string} string
// @Failure 404 {object} util.Response
// @Router /api/certificates/{id}/download [get]
func (c *CertificateController) Download(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.CertService.ListForUser(user.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	for i := range certs {
		if certs[i].CertificateID == ctx.Param("id") {
			ctx.Header("Content-Disposition", "attachment; filename=hipaa_certificate_"+certs[i].CertificateID+".txt")
			ctx.String(http.StatusOK, c.CertService.RenderText(&certs[i], user))
			return
		}
	}
	util.NotFound(ctx)
}

// Revoke godoc
// @Summary Revoke a certificate
// @Tags certificates
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Certificate ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/certificates/{id}/revoke [post]
func (c *CertificateController) Revoke(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CertService.Revoke(ctx.Param("id"), claims.UserID, ctx.ClientIP()); err != nil {
		if errors.Is(err, util.ErrCertNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"revoked": true})
}
