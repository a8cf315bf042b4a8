package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andresrodas/puntoventa-backend/api/controllers"
	"github.com/andresrodas/puntoventa-backend/api/middleware"
	"github.com/andresrodas/puntoventa-backend/internal/alerts"
	"github.com/andresrodas/puntoventa-backend/internal/orders"
	"github.com/andresrodas/puntoventa-backend/internal/sales"
	"github.com/andresrodas/puntoventa-backend/pkg/config"
	"github.com/andresrodas/puntoventa-backend/pkg/logger"
	pkgredis "github.com/andresrodas/puntoventa-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *pkgredis.Client,
	salesService sales.Service,
	ordersService orders.Service,
	alertsService alerts.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	pingers := map[string]controllers.Pinger{"database": dbPinger}
	if redisClient != nil {
		pingers["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	// POS counter surface: sales and alerts run inside the store network,
	// no customer token involved.
	r.Route("/api/v1/sales", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore(redisClient), logg))
		r.Post("/", controllers.CreateSale(salesService, logg))
		r.Get("/", controllers.ListSales(salesService, logg))
	})

	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", controllers.ListAlerts(alertsService, logg))
		r.Put("/{alertId}/resolve", controllers.ResolveAlert(alertsService, logg))
	})

	// Storefront surface: every order endpoint requires a customer token.
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore(redisClient), logg))

		r.Post("/", controllers.CreateOrder(ordersService, logg))
		r.Get("/", controllers.ListOrders(ordersService, logg))
		r.With(middleware.RequireAdmin(logg)).Get("/all", controllers.ListAllOrders(ordersService, logg))
		r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
	})

	return r
}

func idempotencyStore(client *pkgredis.Client) pkgredis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
