package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/schooltest/internal/controller"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/service"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// CreateTest godoc
// @Summary (Admin) Register an original test
// @Description Adds a test to the catalog so retests can be issued against it.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_data body dto.TestCreateDTO true "Test catalog entry"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 403 {object} dto.ErrorResponse "Caller is not staff"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	p, ok := controller.Principal(ctx)
	if !ok {
		return
	}
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, "Admin CreateTest", err)
		return
	}
	testResp, err := c.adminTestService.CreateTest(ctx.Request.Context(), p, req)
	if err != nil {
		controller.RespondError(ctx, "Admin CreateTest", err)
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}
