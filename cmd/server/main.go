package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradejournal/internal/config"
	cronrunner "tradejournal/internal/cron"
	"tradejournal/internal/db"
	"tradejournal/internal/handler"
	"tradejournal/internal/identity"
	"tradejournal/internal/logger"
	"tradejournal/internal/replay"
	gormrepository "tradejournal/internal/repository/gorm"
	"tradejournal/internal/rules"
	"tradejournal/internal/service"
)

func main() {
	cfgPath := os.Getenv("TJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TJ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	identityClient := &identity.Client{
		BaseURL: cfg.Identity.BaseURL,
		HTTP:    &http.Client{Timeout: cfg.Identity.Timeout},
	}
	ruleCatalog := rules.NewCatalog()
	tradeSvc := &service.TradeService{Repo: store, Logger: logger}
	reportSvc := &service.ReportService{Repo: store}
	backfillSvc := &service.BackfillService{
		Repo:      store,
		Logger:    logger,
		BatchSize: cfg.Backfill.BatchSize,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(identity.RequireUser(identityClient, logger, identity.MiddlewareOptions{
		Disabled: cfg.Identity.AuthDisabled,
		CacheTTL: cfg.Identity.VerifyTTL,
	}))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)

	authHandler := &handler.AuthHandler{Client: identityClient}
	authHandler.Register(engine)
	tradeHandler := &handler.TradeHandler{Svc: tradeSvc}
	tradeHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Repo: store}
	analyticsHandler.Register(engine)
	rulesHandler := &handler.RulesHandler{Catalog: ruleCatalog}
	rulesHandler.Register(engine)
	reportsHandler := &handler.ReportsHandler{Svc: reportSvc}
	reportsHandler.Register(engine)
	replayHandler := &handler.ReplayHandler{
		Logger: logger,
		Sink: func(trade replay.SimulatedTrade) {
			logger.Info("simulated trade closed",
				zap.String("symbol", trade.Symbol),
				zap.String("direction", trade.Direction),
				zap.Float64("profit", trade.Profit),
			)
		},
		SeriesPoints: cfg.Replay.SeriesPoints,
		BasePrice:    cfg.Replay.BasePrice,
	}
	replayHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.Backfill, func(ctx context.Context) {
			if _, err := backfillSvc.RunOnce(ctx); err != nil {
				logger.Warn("cron derived backfill failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register backfill failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
