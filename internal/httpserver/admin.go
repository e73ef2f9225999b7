package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

// Admin endpoints are plain reads for the dashboard plus the explicit
// order-failure transition. Listing limit is fixed; the dashboard shows
// recent activity, not full history.
const adminListLimit = 100

func listOrdersHandler(repo orderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.List(c.Request.Context(), adminListLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(repo orderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ord, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, ord)
	}
}

func failOrderHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkFailed(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": domain.OrderFailed})
	}
}

func listPaymentsHandler(repo orderReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		paymentsList, err := repo.ListPayments(c.Request.Context(), adminListLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list payments"})
			return
		}
		if paymentsList == nil {
			paymentsList = []domain.Payment{}
		}
		c.JSON(http.StatusOK, gin.H{"payments": paymentsList})
	}
}

func listCustomersHandler(repo customerReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := repo.List(c.Request.Context(), adminListLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list customers"})
			return
		}
		if customers == nil {
			customers = []domain.Customer{}
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}
