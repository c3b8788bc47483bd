package controller

import (
	"hipaa_training_backend/internal/repository"
	"hipaa_training_backend/internal/service"
	"hipaa_training_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
	AuditService  *service.AuditService
	AuthService   *service.AuthService
	UserRepo      *repository.UserRepository
}

func NewReportController(
	reportService *service.ReportService,
	auditService *service.AuditService,
	authService *service.AuthService,
	userRepo *repository.UserRepository,
) *ReportController {
	return &ReportController{
		ReportService: reportService,
		AuditService:  auditService,
		AuthService:   authService,
		UserRepo:      userRepo,
	}
}

// MyReport godoc
// @Summary The caller's compliance report
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.UserReport}
// @Router /api/report [get]
func (c *ReportController) MyReport(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	report, err := c.ReportService.UserReport(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// UserReport godoc
// @Summary Compliance report for one user
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "User ID"
// @Success 200 {object} util.Response{data=service.UserReport}
// @Failure 404 {object} util.Response
// @Router /api/admin/reports/users/{id} [get]
func (c *ReportController) UserReport(ctx *gin.Context) {
	user, err := c.UserRepo.FindByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	report, err := c.ReportService.UserReport(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Dashboard godoc
// @Summary Organization compliance dashboard
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.OrgStats}
// @Router /api/admin/reports/dashboard [get]
func (c *ReportController) Dashboard(ctx *gin.Context) {
	stats, err := c.ReportService.OrgStats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ExportDashboard godoc
// @Summary Export the dashboard to a file
// @Description Writes a CSV or JSON snapshot to the report directory
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   format query string false "csv or json" default(csv)
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "Unsupported format"
// @Router /api/admin/reports/dashboard/export [post]
func (c *ReportController) ExportDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	path, err := c.ReportService.ExportDashboard(ctx.DefaultQuery("format", "csv"), claims.UserID, ctx.ClientIP())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"file": path})
}

// AuditTrail godoc
// @Summary Query the audit trail
// @Tags reports
// @Produce  json
// @Security BearerAuth
// @Param   user_id query int false "Filter by user"
// @Param   action query string false "Filter by action code"
// @Param   days query int false "Look back this many days" default(30)
// @Param   limit query int false "Max rows" default(100)
// @Success 200 {object} util.Response{data=[]model.AuditLog}
// @Router /api/admin/audit [get]
func (c *ReportController) AuditTrail(ctx *gin.Context) {
	days := int(util.MustParseUint(ctx.DefaultQuery("days", "30")))
	limit := int(util.MustParseUint(ctx.DefaultQuery("limit", "100")))
	filter := repository.AuditFilter{
		UserID: util.MustParseUint(ctx.Query("user_id")),
		Action: ctx.Query("action"),
		Limit:  limit,
	}
	if days > 0 {
		filter.Since = time.Now().AddDate(0, 0, -days)
	}

	entries, err := c.AuditService.Query(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
