package routes

import (
	"caloria/internal/controllers"
	"caloria/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterPeriodRoutes(router *gin.Engine, periodController *controllers.PeriodController) {
	periodRoutes := router.Group("/period")
	periodRoutes.Use(middleware.AuthMiddleware())
	{
		periodRoutes.POST("/baseline", periodController.StartBaseline)
		periodRoutes.POST("/baseline/abandon", periodController.AbandonBaseline)
		periodRoutes.POST("/rotate", periodController.CreateOrRotatePeriod)
	}

	// The scheduled job runner authenticates with its own bearer
	// credential, never a user session.
	jobRoutes := router.Group("/jobs")
	jobRoutes.Use(middleware.CronAuthMiddleware())
	{
		jobRoutes.POST("/rotate", periodController.RunRotationJob)
	}
}
