package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tindapos/internal/audit"
	"tindapos/internal/config"
	"tindapos/internal/handler"
	"tindapos/internal/infra"
	"tindapos/internal/repository"
	"tindapos/internal/router"
	"tindapos/internal/service"
	"tindapos/internal/worker"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	if cfg.Env != "production" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	renderer, err := infra.NewReceiptRenderer(cfg.ReceiptStoragePath, cfg.StoreName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare receipt storage")
	}
	mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	// repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	ledgerRepo := repository.NewInventoryLogRepository(db)
	systemLogRepo := repository.NewSystemLogRepository(db)

	// services
	sink := audit.NewStoreSink(systemLogRepo, log)
	priceCache := infra.NewPriceCache(rdb, log)
	dispatcher := worker.NewRedisDispatcher(rdb, log)

	authSvc := service.NewAuthService(userRepo, sink, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	productSvc := service.NewProductService(productRepo, categoryRepo, priceCache, sink)
	inventorySvc := service.NewInventoryService(productRepo, ledgerRepo, sink)
	saleSvc := service.NewSaleService(saleRepo, inventorySvc, sink, dispatcher)
	logSvc := service.NewLogService(systemLogRepo)

	engine := router.New(cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		Product: handler.NewProductHandler(productSvc, inventorySvc),
		Sale:    handler.NewSaleHandler(saleSvc),
		Log:     handler.NewLogHandler(logSvc),
		Price:   handler.NewPriceHandler(productSvc),
	}, rdb, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := worker.NewReceiptPool(rdb, saleRepo, renderer, mailer, cfg.StoreName, cfg.WorkerPoolSize, log)
	pool.Start(ctx)

	cron := worker.NewLowStockCron(inventorySvc, mailer, sink, cfg.AlertEmail, cfg.StoreName, time.Hour, log)
	cron.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	pool.Wait()
	log.Info().Msg("bye")
}
