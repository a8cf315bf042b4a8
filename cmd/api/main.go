package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/andresrodas/puntoventa-backend/api/routes"
	"github.com/andresrodas/puntoventa-backend/internal/alerts"
	"github.com/andresrodas/puntoventa-backend/internal/ledger"
	"github.com/andresrodas/puntoventa-backend/internal/orders"
	"github.com/andresrodas/puntoventa-backend/internal/sales"
	"github.com/andresrodas/puntoventa-backend/internal/sequence"
	"github.com/andresrodas/puntoventa-backend/internal/stock"
	"github.com/andresrodas/puntoventa-backend/pkg/config"
	"github.com/andresrodas/puntoventa-backend/pkg/db"
	"github.com/andresrodas/puntoventa-backend/pkg/logger"
	"github.com/andresrodas/puntoventa-backend/pkg/migrate"
	"github.com/andresrodas/puntoventa-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	conn := dbClient.DB()
	stockLedger := stock.NewLedger(conn)
	seqGenerator := sequence.NewGenerator(conn)

	alertsService, err := alerts.NewService(alerts.NewRepository(conn), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create alerts service", err)
		os.Exit(1)
	}

	movementsService, err := ledger.NewService(ledger.NewRepository(conn))
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	salesService, err := sales.NewService(
		dbClient,
		sales.NewRepository(conn),
		stockLedger,
		seqGenerator,
		alertsService,
		movementsService,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		dbClient,
		orders.NewRepository(conn),
		stockLedger,
		seqGenerator,
		alertsService,
		movementsService,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, salesService, ordersService, alertsService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
