package routes

import (
	"caloria/internal/controllers"
	"caloria/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterObservationRoutes(router *gin.Engine, observationController *controllers.ObservationController) {
	observationRoutes := router.Group("/observation")
	observationRoutes.Use(middleware.AuthMiddleware())
	{
		observationRoutes.POST("/", observationController.LogConsumption)
		observationRoutes.POST("/exercise", observationController.LogExercise)
	}
}
