package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/internal/controller"
	"github.com/lshigami/schooltest/internal/service"
)

type UserTestController struct {
	userTestService service.UserTestService
	recorder        service.AttemptRecorder
	bestService     service.BestAttemptService
}

func NewUserTestController(uts service.UserTestService, recorder service.AttemptRecorder, bestService service.BestAttemptService) *UserTestController {
	return &UserTestController{userTestService: uts, recorder: recorder, bestService: bestService}
}

// GetAllTests godoc
// @Summary (User) List tests in the catalog
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, "User GetAllTests", err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (User) Get a test
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testDetails, err := c.userTestService.GetTestDetails(ctx.Request.Context(), ctx.Param("test_id"))
	if err != nil {
		controller.RespondError(ctx, "User GetTestDetails", err)
		return
	}
	ctx.JSON(http.StatusOK, testDetails)
}

// GetMyAttempts godoc
// @Summary (User) List my attempts for a test
// @Description Original sitting and retakes, ordered by attempt number.
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 200 {array} dto.AttemptResponseDTO
// @Router /tests/{test_id}/attempts [get]
func (c *UserTestController) GetMyAttempts(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	attempts, err := c.recorder.ListAttempts(ctx.Request.Context(), p, p.SubjectID, ctx.Param("test_id"))
	if err != nil {
		controller.RespondError(ctx, "User GetMyAttempts", err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetMyBest godoc
// @Summary (User) Get my best attempt for a test
// @Tags User - Tests & Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 200 {object} dto.BestAttemptResponseDTO
// @Failure 404 {object} dto.ErrorResponse "No attempts yet"
// @Router /tests/{test_id}/best [get]
func (c *UserTestController) GetMyBest(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	best, err := c.bestService.GetBest(ctx.Request.Context(), p, p.SubjectID, ctx.Param("test_id"))
	if err != nil {
		controller.RespondError(ctx, "User GetMyBest", err)
		return
	}
	ctx.JSON(http.StatusOK, best)
}
