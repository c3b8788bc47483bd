package controller

import (
	"errors"

	"hipaa_training_backend/internal/service"
	"hipaa_training_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrainingController struct {
	TrainingService *service.TrainingService
	AuthService     *service.AuthService
}

func NewTrainingController(trainingService *service.TrainingService, authService *service.AuthService) *TrainingController {
	return &TrainingController{TrainingService: trainingService, AuthService: authService}
}

// ListLessons godoc
// @Summary List lessons with completion state
// @Tags training
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.LessonSummary}
// @Router /api/lessons [get]
func (c *TrainingController) ListLessons(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summaries, err := c.TrainingService.ListLessons(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summaries)
}

// GetLesson godoc
// @Summary Lesson detail
// @Description Returns the lesson body and comprehension questions without answer keys
// @Tags training
// @Produce  json
// @Security BearerAuth
// @Param   title path string true "Lesson title"
// @Success 200 {object} util.Response{data=service.LessonDetail}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{title} [get]
func (c *TrainingController) GetLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.TrainingService.GetLesson(claims.UserID, ctx.Param("title"), ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// swagger:model CompleteLessonRequest
type CompleteLessonRequest struct {
	Answers []int `json:"answers"`
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description Lessons with comprehension questions require a passing mini-quiz score
// @Tags training
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   title path string true "Lesson title"
// @Param   body body CompleteLessonRequest false "Comprehension answers (option indexes)"
// @Success 200 {object} util.Response{data=service.LessonCompletion}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{title}/complete [post]
func (c *TrainingController) CompleteLesson(ctx *gin.Context) {
	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.TrainingService.CompleteLesson(claims.UserID, ctx.Param("title"), req.Answers, ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// QuizQuestions godoc
// @Summary Knowledge quiz questions
// @Description Questions and options only; answers and explanations are withheld until submission
// @Tags training
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.PresentedQuestion}
// @Router /api/quiz [get]
func (c *TrainingController) QuizQuestions(ctx *gin.Context) {
	util.Success(ctx, c.TrainingService.QuizQuestions())
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers []string `json:"answers" binding:"required"`
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the attempt and issues a certificate when the pass threshold is reached
// @Tags training
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body SubmitQuizRequest true "Lettered answers, one per question"
// @Success 200 {object} util.Response{data=service.QuizSubmission}
// @Failure 400 {object} util.Response
// @Router /api/quiz/submit [post]
func (c *TrainingController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submission, err := c.TrainingService.SubmitQuiz(user, req.Answers, ctx.ClientIP())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submission)
}

// History godoc
// @Summary Training history
// @Description The caller's own progress records, quiz answers decrypted
// @Tags training
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.ProgressEntry}
// @Router /api/progress [get]
func (c *TrainingController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	entries, err := c.TrainingService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// ResetProgress godoc
// @Summary Reset training progress
// @Description Deletes the caller's progress records; certificates and the audit trail are kept
// @Tags training
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/progress/reset [post]
func (c *TrainingController) ResetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	deleted, err := c.TrainingService.ResetProgress(claims.UserID, ctx.ClientIP())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": deleted})
}
