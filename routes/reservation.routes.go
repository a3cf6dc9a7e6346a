package routes

import (
	"caloria/internal/controllers"
	"caloria/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterReservationRoutes(router *gin.Engine, reservationController *controllers.ReservationController) {
	reservationRoutes := router.Group("/reservation")
	reservationRoutes.Use(middleware.AuthMiddleware())
	{
		reservationRoutes.POST("/", reservationController.Reserve)
		reservationRoutes.DELETE("/:date", reservationController.DeleteReservation)
	}

	adjustedRoutes := router.Group("/budget/adjusted")
	adjustedRoutes.Use(middleware.AuthMiddleware())
	{
		adjustedRoutes.GET("/:date", reservationController.GetAdjustedBudget)
	}
}
