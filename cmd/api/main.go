package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "impactcore/api/swagger" // swagger docs
	"impactcore/internal/config"
	"impactcore/internal/database"
	"impactcore/internal/handler"
	"impactcore/internal/logging"
	"impactcore/internal/metrics"
	"impactcore/internal/middleware"
	"impactcore/internal/repository"
	"impactcore/internal/service"
	"impactcore/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Impact Marketplace Rules API
// @version         1.0
// @description     Fees, sales tax exemption, barter settlement, filing compliance and impact scoring for a nonprofit marketplace.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("impactcore-api", "development", "info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup("impactcore-api", cfg.Env, cfg.LogLevel)

	db, err := database.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database", "driver", cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feeConfig, err := service.ParseFeeConfig(cfg.Fees.PlatformPct, cfg.Fees.CardPct, cfg.Fees.PointsPct)
	if err != nil {
		logger.Error("invalid fee configuration", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, tax rule cache will fall back to the database", "addr", cfg.Redis.Addr, "error", err)
		}
		defer redisClient.Close()
	}

	collector := metrics.New()
	auth := middleware.NewAuth(cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.IsProduction())

	wsHub := websocket.NewHub(logger)
	go wsHub.Run(ctx)

	// Repository -> Service -> Handler
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	ruleRepo := repository.NewCachedStateTaxRuleRepository(repository.NewStateTaxRuleRepository(db), redisClient, cfg.Redis.TTL, logger)
	certRepo := repository.NewCertificateRepository(db)
	listingRepo := repository.NewListingRepository(db)
	barterRepo := repository.NewBarterRepository(db)
	impactRepo := repository.NewImpactRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	exemptions := service.NewExemptionService(userRepo, orgRepo, ruleRepo, certRepo, time.Now, logger)
	feeService := service.NewFeeService(feeConfig, ruleRepo, listingRepo, exemptions, collector, logger)
	settlementService := service.NewSettlementService(barterRepo, listingRepo, orgRepo, userRepo, auditRepo, txManager, collector, time.Now, logger)
	complianceService := service.NewComplianceService(orgRepo, auditRepo, txManager, cfg.Compliance.ThresholdMonths, collector, time.Now, logger)
	impactService := service.NewImpactService(service.DefaultImpactConfig(cfg.Impact.CriticalKeywords), impactRepo, userRepo, auditRepo, txManager, collector, time.Now, logger)
	userService := service.NewUserService(userRepo, orgRepo, auth)
	taxService := service.NewTaxService(ruleRepo, auditRepo, txManager)
	certService := service.NewCertificateService(certRepo, userRepo, auditRepo, txManager, time.Now)
	directoryService := service.NewDirectoryService(orgRepo, listingRepo, userRepo)
	auditService := service.NewAuditService(auditRepo)

	handlers := []interface {
		RegisterRoutes(*gin.RouterGroup)
	}{
		handler.NewUserHandler(userService, auth),
		handler.NewFeeHandler(feeService, exemptions, auth),
		handler.NewTaxHandler(taxService, certService, auth),
		handler.NewOrganizationHandler(directoryService, complianceService, auth),
		handler.NewBarterHandler(settlementService, wsHub, auth),
		handler.NewImpactHandler(impactService, wsHub, auth),
		handler.NewAuditHandler(auditService, auth),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(collector.Handler()))
	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DEGRADED"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "ws_clients": wsHub.ClientCount()})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, auth)
	})

	api := router.Group("")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
