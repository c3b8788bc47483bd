package controller

import (
	"errors"
	"fmt"
	"net/http"

	"hipaa_training_backend/internal/config"
	"hipaa_training_backend/internal/service"
	"hipaa_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChecklistController struct {
	ChecklistService *service.ChecklistService
	EvidenceService  *service.EvidenceService
	Cfg              *config.Config
}

func NewChecklistController(checklistService *service.ChecklistService, evidenceService *service.EvidenceService, cfg *config.Config) *ChecklistController {
	return &ChecklistController{
		ChecklistService: checklistService,
		EvidenceService:  evidenceService,
		Cfg:              cfg,
	}
}

// Get godoc
// @Summary Self-audit checklist
// @Description Checklist items merged with the caller's latest saved state
// @Tags checklist
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ChecklistView}
// @Router /api/checklist [get]
func (c *ChecklistController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.ChecklistService.Get(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// swagger:model SaveChecklistRequest
type SaveChecklistRequest struct {
	Completed []string `json:"completed" binding:"required"`
}

// Save godoc
// @Summary Save a checklist snapshot
// @Description Stores the full completion state encrypted; only category counts stay readable
// @Tags checklist
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SaveChecklistRequest true "Texts of completed items"
// @Success 200 {object} util.Response{data=service.ChecklistView}
// @Failure 400 {object} util.Response "Unknown checklist item"
// @Router /api/checklist [put]
func (c *ChecklistController) Save(ctx *gin.Context) {
	var req SaveChecklistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ChecklistService.Save(claims.UserID, req.Completed, ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrChecklistItem) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// swagger:model CompleteItemRequest
type CompleteItemRequest struct {
	Text string `json:"text" binding:"required"`
}

// CompleteItem godoc
// @Summary Mark one checklist item done
// @Tags checklist
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CompleteItemRequest true "Item text"
// @Success 200 {object} util.Response{data=service.ChecklistView}
// @Failure 400 {object} util.Response "Unknown checklist item"
// @Router /api/checklist/complete [post]
func (c *ChecklistController) CompleteItem(ctx *gin.Context) {
	var req CompleteItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	view, err := c.ChecklistService.CompleteItem(claims.UserID, req.Text, ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrChecklistItem) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// UploadEvidence godoc
// @Summary Upload checklist evidence
// @Description Accepts PDF/JPG/PNG up to the size limit, stored encrypted at rest
// @Tags checklist
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "Evidence file"
// @Success 201 {object} util.Response{data=service.EvidenceFile}
// @Failure 400 {object} util.Response "Bad file type or size"
// @Router /api/checklist/evidence [post]
func (c *ChecklistController) UploadEvidence(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > c.Cfg.Evidence.MaxSizeBytes {
		util.BadRequest(ctx, fmt.Sprintf("file exceeds %d byte limit", c.Cfg.Evidence.MaxSizeBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	claims := util.GetUserFromContext(ctx)
	stored, err := c.EvidenceService.Store(claims.UserID, fileHeader.Filename, file, ctx.ClientIP())
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, stored)
}

// ListEvidence godoc
// @Summary List uploaded evidence
// @Tags checklist
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.EvidenceFile}
// @Router /api/checklist/evidence [get]
func (c *ChecklistController) ListEvidence(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	files, err := c.EvidenceService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, files)
}

// DownloadEvidence godoc
// @Summary Download one evidence file
// @Description Decrypts and streams a stored evidence file back to its owner
// @Tags checklist
// @Produce  application/octet-stream
// @Security BearerAuth
// @Param   name path string true "Stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/checklist/evidence/{name} [get]
func (c *ChecklistController) DownloadEvidence(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	data, err := c.EvidenceService.Fetch(claims.UserID, ctx.Param("name"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+ctx.Param("name"))
	ctx.Data(http.StatusOK, "application/octet-stream", data)
}
