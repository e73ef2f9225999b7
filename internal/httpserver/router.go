package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
)

// Deps carries the wired services and repositories for the router.
type Deps struct {
	CatalogSvc    *catalog.Service
	CheckoutSvc   *checkout.Service
	OrderRepo     orderReader
	CustomerRepo  customerReader
	WebhookSecret string
	CORSOrigins   []string
}

type orderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, limit int) ([]domain.Order, error)
	ListPayments(ctx context.Context, limit int) ([]domain.Payment, error)
}

type customerReader interface {
	List(ctx context.Context, limit int) ([]domain.Customer, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = deps.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))

	router.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	router.POST("/webhooks/stripe", webhookHandler(deps.CheckoutSvc, deps.WebhookSecret, logger))

	admin := router.Group("/admin")
	{
		admin.GET("/orders", listOrdersHandler(deps.OrderRepo))
		admin.GET("/orders/:id", getOrderHandler(deps.OrderRepo))
		admin.POST("/orders/:id/fail", failOrderHandler(deps.CheckoutSvc))
		admin.GET("/payments", listPaymentsHandler(deps.OrderRepo))
		admin.GET("/customers", listCustomersHandler(deps.CustomerRepo))
		admin.GET("/products", listProductsHandler(deps.CatalogSvc))
	}

	return router
}
