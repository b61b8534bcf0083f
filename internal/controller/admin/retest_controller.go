package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/internal/controller"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/service"
)

type RetestController struct {
	retestService service.RetestAssignmentService
	bestService   service.BestAttemptService
}

func NewRetestController(retestService service.RetestAssignmentService, bestService service.BestAttemptService) *RetestController {
	return &RetestController{retestService: retestService, bestService: bestService}
}

// CreateAssignment godoc
// @Summary (Admin) Offer a retest
// @Description Creates a retest assignment for an original test and one target per student. Re-sending the same ID is idempotent.
// @Tags Admin - Retests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.RetestAssignmentCreateDTO true "Retest definition"
// @Success 201 {object} dto.RetestAssignmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid definition"
// @Failure 403 {object} dto.ErrorResponse "Caller is not staff"
// @Failure 404 {object} dto.ErrorResponse "Original test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/retests [post]
func (c *RetestController) CreateAssignment(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.RetestAssignmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, "Admin CreateAssignment", err)
		return
	}
	resp, err := c.retestService.CreateAssignment(ctx.Request.Context(), p, req)
	if err != nil {
		controller.RespondError(ctx, "Admin CreateAssignment", err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAssignment godoc
// @Summary (Admin) Get a retest assignment
// @Tags Admin - Retests
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} dto.RetestAssignmentResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /admin/retests/{assignment_id} [get]
func (c *RetestController) GetAssignment(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	resp, err := c.retestService.GetAssignment(ctx.Request.Context(), p, ctx.Param("assignment_id"))
	if err != nil {
		controller.RespondError(ctx, "Admin GetAssignment", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CancelAssignment godoc
// @Summary (Admin) Cancel a retest
// @Description Closes the retest window now. Targets keep their state.
// @Tags Admin - Retests
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} dto.RetestAssignmentResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /admin/retests/{assignment_id}/cancel [post]
func (c *RetestController) CancelAssignment(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	resp, err := c.retestService.CancelAssignment(ctx.Request.Context(), p, ctx.Param("assignment_id"))
	if err != nil {
		controller.RespondError(ctx, "Admin CancelAssignment", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExpireTargets godoc
// @Summary (Admin) Expire open targets
// @Description Marks every unfinished target EXPIRED. Only allowed after the window has closed.
// @Tags Admin - Retests
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} dto.ExpireTargetsResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Window still open"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /admin/retests/{assignment_id}/expire [post]
func (c *RetestController) ExpireTargets(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	assignmentID := ctx.Param("assignment_id")
	n, err := c.retestService.ExpireTargets(ctx.Request.Context(), p, assignmentID)
	if err != nil {
		controller.RespondError(ctx, "Admin ExpireTargets", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ExpireTargetsResponseDTO{AssignmentID: assignmentID, Expired: n})
}

// GetTargets godoc
// @Summary (Admin) List retest targets
// @Tags Admin - Retests
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {array} dto.RetestTargetResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /admin/retests/{assignment_id}/targets [get]
func (c *RetestController) GetTargets(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	resp, err := c.retestService.GetTargetsForAssignment(ctx.Request.Context(), p, ctx.Param("assignment_id"))
	if err != nil {
		controller.RespondError(ctx, "Admin GetTargets", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RefreshBest godoc
// @Summary (Admin) Recompute a best attempt
// @Tags Admin - Retests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param refresh body dto.BestAttemptRefreshDTO true "Student and test"
// @Success 200 {object} dto.BestAttemptResponseDTO
// @Failure 404 {object} dto.ErrorResponse "No attempts"
// @Router /admin/best-attempts/refresh [post]
func (c *RetestController) RefreshBest(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.BestAttemptRefreshDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, "Admin RefreshBest", err)
		return
	}
	resp, err := c.bestService.Refresh(ctx.Request.Context(), p, req.StudentID, req.TestID)
	if err != nil {
		controller.RespondError(ctx, "Admin RefreshBest", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
