package routes

import (
	"caloria/internal/controllers"
	"caloria/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterMetricsRoutes(router *gin.Engine, metricsController *controllers.MetricsController) {
	metricsRoutes := router.Group("/metrics")
	metricsRoutes.Use(middleware.AuthMiddleware())
	{
		metricsRoutes.POST("/recalculate", metricsController.RecalculateMetrics)
		metricsRoutes.GET("/period/:period_id", metricsController.GetPeriodSnapshots)
		metricsRoutes.GET("/period/:period_id/:date", metricsController.GetPeriodSnapshot)
	}
}
