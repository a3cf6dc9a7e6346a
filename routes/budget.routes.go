package routes

import (
	"caloria/internal/controllers"
	"caloria/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterBudgetRoutes(router *gin.Engine, budgetController *controllers.BudgetController) {
	budgetRoutes := router.Group("/budget")
	budgetRoutes.Use(middleware.AuthMiddleware())
	{
		budgetRoutes.POST("/estimate", budgetController.EstimateBaseline)
		budgetRoutes.POST("/synthesize", budgetController.SynthesizeBudget)
		budgetRoutes.PUT("/profile", budgetController.SaveProfile)
		budgetRoutes.GET("/profile", budgetController.GetProfile)
	}
}
