package catalog

import (
	"net/http"

	"parkpass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListPrices handles GET /api/v1/prices
func (c *Controller) ListPrices(ctx *gin.Context) {
	prices, err := c.service.ListPrices(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load price catalog", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Price catalog retrieved successfully", PriceListResponse{
		Prices: prices,
		Count:  len(prices),
	}, nil)
}
