package http

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api/v1")
	{
		api.GET("/portfolios", handler.ListPortfolios)
		api.POST("/portfolios", handler.CreatePortfolio)
		api.GET("/portfolios/stats", handler.GetStats)
		api.POST("/portfolios/batch-delete", handler.BatchDeletePortfolios)
		api.POST("/portfolios/sort", handler.UpdateSortOrder)

		api.GET("/portfolios/:id", handler.GetPortfolio)
		api.PUT("/portfolios/:id", handler.UpdatePortfolio)
		api.DELETE("/portfolios/:id", handler.DeletePortfolio)
		api.PUT("/portfolios/:id/featured", handler.ToggleFeatured)

		api.GET("/health", handler.Health)
	}

	router.GET("/health", handler.Health)
}
