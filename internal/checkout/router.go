package checkout

import (
	"parkpass/internal/shared/config"
	"parkpass/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCheckoutRoutes configures all checkout-session routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	// Session creation is open; it mints the token the other routes require
	rg.POST("/checkout/sessions", controller.CreateSession)

	session := rg.Group("/checkout/session")
	session.Use(middleware.SessionAuthWithConfig(cfg))
	{
		session.GET("", controller.GetSession)

		session.PUT("/tickets", controller.SetTickets)
		session.PUT("/date", controller.SetVisitDate)
		session.PUT("/terms", controller.SetTerms)
		session.PUT("/customer", controller.SetCustomerInfo)
		session.PUT("/address", controller.SetCustomerAddress)
		session.PUT("/payment", controller.SetPaymentInfo)

		session.POST("/advance", controller.Advance)
		session.POST("/back", controller.Back)
		session.POST("/submit", controller.Submit)
		session.POST("/reset", controller.Reset)
	}
}
