package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	adminctrl "github.com/lshigami/schooltest/internal/controller/admin"
	userctrl "github.com/lshigami/schooltest/internal/controller/user"
	"github.com/lshigami/schooltest/internal/auth"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

type Controllers struct {
	AdminTest  *adminctrl.AdminTestController
	Retest     *adminctrl.RetestController
	UserTest   *userctrl.UserTestController
	Submission *userctrl.SubmissionController
}

// Register mounts the API under /api/v1. Every route requires a bearer token.
func Register(r *gin.Engine, authService *auth.AuthService, c Controllers) {
	api := r.Group("/api/v1", authService.RequireAuth())

	admin := api.Group("/admin", auth.RequireRole(auth.RoleTeacher, auth.RoleAdmin))
	{
		admin.POST("/tests", c.AdminTest.CreateTest)

		retests := admin.Group("/retests")
		retests.POST("", c.Retest.CreateAssignment)
		retests.GET("/:assignment_id", c.Retest.GetAssignment)
		retests.POST("/:assignment_id/cancel", c.Retest.CancelAssignment)
		retests.POST("/:assignment_id/expire", c.Retest.ExpireTargets)
		retests.GET("/:assignment_id/targets", c.Retest.GetTargets)

		admin.POST("/best-attempts/refresh", c.Retest.RefreshBest)
	}

	api.GET("/tests", c.UserTest.GetAllTests)
	api.GET("/tests/:test_id", c.UserTest.GetTestDetails)

	student := api.Group("", auth.RequireRole(auth.RoleStudent))
	{
		student.POST("/submissions", c.Submission.Submit)
		student.GET("/retests/:assignment_id/target", c.Submission.GetMyTarget)
		student.GET("/tests/:test_id/attempts", c.UserTest.GetMyAttempts)
		student.GET("/tests/:test_id/best", c.UserTest.GetMyBest)
	}
}
