package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/internal/controller"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/service"
)

type SubmissionController struct {
	submissionService service.SubmissionService
	retestService     service.RetestAssignmentService
}

func NewSubmissionController(submissionService service.SubmissionService, retestService service.RetestAssignmentService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService, retestService: retestService}
}

// Submit godoc
// @Summary (User) Submit a graded attempt
// @Description Records an attempt of an original test. With retest_assignment_id the retest rules apply: window, attempt cap and pass threshold. A repeated submission_key updates the earlier attempt instead of using a new one.
// @Tags User - Submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmissionDTO true "Graded submission"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid scores or mismatched test"
// @Failure 403 {object} dto.ErrorResponse "Not the submitting student"
// @Failure 404 {object} dto.ErrorResponse "Test, retest or target not found"
// @Failure 409 {object} dto.ErrorResponse "window_closed, already_completed, attempts_exhausted or conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.SubmissionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, "User Submit", err)
		return
	}
	result, err := c.submissionService.Submit(ctx.Request.Context(), p, req)
	if err != nil {
		controller.RespondError(ctx, "User Submit", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetMyTarget godoc
// @Summary (User) Get my progress on a retest
// @Tags User - Submissions
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} dto.RetestTargetDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Not a target of this retest"
// @Router /retests/{assignment_id}/target [get]
func (c *SubmissionController) GetMyTarget(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	resp, err := c.retestService.GetTarget(ctx.Request.Context(), p, ctx.Param("assignment_id"), p.SubjectID)
	if err != nil {
		controller.RespondError(ctx, "User GetMyTarget", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
