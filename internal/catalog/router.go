package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures the public price catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	prices := rg.Group("/prices")
	{
		prices.GET("", controller.ListPrices) // GET /api/v1/prices
	}
}
