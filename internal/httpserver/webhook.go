package httpserver

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/payments"
	"storefront/internal/service/checkout"
)

const maxWebhookBody = 1 << 20

// webhookHandler ingests payment-processor events. Deliveries are
// at-least-once: an unknown order is logged and still acknowledged so the
// processor stops retrying, and duplicates are absorbed by the idempotent
// attach. Only signature and payload failures get a non-2xx response.
func webhookHandler(svc *checkout.Service, secret string, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
			return
		}

		sig := c.GetHeader("Stripe-Signature")
		if err := payments.VerifySignature(payload, sig, secret, time.Now()); err != nil {
			logger.Printf("webhook: signature rejected: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}

		event, err := payments.ParseEvent(payload)
		if err != nil {
			logger.Printf("webhook: bad payload: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		if event.Type != "payment_intent.succeeded" {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		_, err = svc.AttachPayment(c.Request.Context(), event.OrderID, event.ProviderRef, event.AmountCents, event.Currency)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				logger.Printf("webhook: event %s references unknown order %q", event.ID, event.OrderID)
				c.JSON(http.StatusOK, gin.H{"received": true})
				return
			}
			logger.Printf("webhook: attach payment for order %s failed: %v", event.OrderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment not recorded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
