package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

type checkoutRequest struct {
	CustomerID *string              `json:"customerId,omitempty"`
	Items      []checkout.ItemInput `json:"items"`
}

func checkoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		result, err := svc.CreateOrder(c.Request.Context(), req.CustomerID, req.Items)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrInvalidInput):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, domain.ErrProductNotFound):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			default:
				// generic retry prompt; no partial order was persisted
				c.JSON(http.StatusBadGateway, gin.H{"error": "checkout failed, please retry"})
			}
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}
