package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lead-market/pkg/cache"
	"lead-market/pkg/config"
	"lead-market/pkg/database"
	"lead-market/pkg/jwt"
	"lead-market/pkg/logger"
	"lead-market/pkg/metrics"
	"lead-market/pkg/middleware"
	"lead-market/pkg/queue"
	marketHTTP "lead-market/services/market/internal/controller/http"
	"lead-market/services/market/internal/entity"
	"lead-market/services/market/internal/repo/persistent"
	"lead-market/services/market/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "lead-market/services/market/docs" // Swagger docs
)

const replayKeyPrefix = "webhook_replay"

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Webhook replays still hit the database status guard without Redis
		log.Warn("Failed to connect to redis: %v (continuing without replay cache and rate limit)", err)
		redisClient = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTTL),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("Market service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) router() *gin.Engine {
	// Side-effect sinks stay untyped nil when their backend is down
	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}
	var replay usecase.ReplayGuard
	if a.redisClient != nil {
		replay = cache.NewIdempotencyStore(a.redisClient, replayKeyPrefix)
	}

	// Initialize repositories
	tx := persistent.NewTxManager(a.db)
	userRepo := persistent.NewUserRepository(a.db)
	leadRepo := persistent.NewLeadRepository(a.db)
	leadTypeRepo := persistent.NewLeadTypeRepository(a.db)
	consentRepo := persistent.NewConsentRepository(a.db)
	orderRepo := persistent.NewOrderRepository(a.db)
	paymentRepo := persistent.NewPaymentRepository(a.db)
	payoutRepo := persistent.NewPayoutRepository(a.db)
	topupRepo := persistent.NewTopupRepository(a.db)
	ledgerRepo := persistent.NewTransactionRepository(a.db)
	auditRepo := persistent.NewAuditRepository(a.db)

	// Initialize use cases
	auditUseCase := usecase.NewAuditUseCase(auditRepo, a.log)
	leadUseCase := usecase.NewLeadUseCase(tx, leadRepo, leadTypeRepo, consentRepo, orderRepo, auditUseCase, a.log)
	orderUseCase := usecase.NewOrderUseCase(tx, orderRepo, leadRepo, userRepo, paymentRepo, ledgerRepo, auditUseCase, events, a.log)
	paymentUseCase := usecase.NewPaymentUseCase(
		usecase.PaymentConfig{
			WebhookSecret: a.cfg.PaymentWebhookSecret,
			BaseURL:       a.cfg.PaymentBaseURL,
			ReplayTTL:     a.cfg.WebhookReplayTTL,
		},
		tx, paymentRepo, orderRepo, leadRepo, userRepo, ledgerRepo, replay, auditUseCase, events, a.log,
	)
	payoutUseCase := usecase.NewPayoutUseCase(tx, payoutRepo, userRepo, ledgerRepo, auditUseCase, events, a.log)
	topupUseCase := usecase.NewTopupUseCase(tx, topupRepo, userRepo, ledgerRepo, auditUseCase, events, a.log)
	walletUseCase := usecase.NewWalletUseCase(userRepo, ledgerRepo, a.log)

	// Initialize HTTP handlers
	leadHandler := marketHTTP.NewLeadHandler(leadUseCase, a.log)
	orderHandler := marketHTTP.NewOrderHandler(orderUseCase, paymentUseCase, a.log)
	paymentHandler := marketHTTP.NewPaymentHandler(paymentUseCase, a.log)
	payoutHandler := marketHTTP.NewPayoutHandler(payoutUseCase, a.log)
	topupHandler := marketHTTP.NewTopupHandler(topupUseCase, a.log)
	walletHandler := marketHTTP.NewWalletHandler(walletUseCase, a.log)
	adminHandler := marketHTTP.NewAdminHandler(leadUseCase, orderUseCase, auditUseCase, a.log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(a.log))
	r.Use(metrics.GinMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// The provider authenticates with the shared secret, not a JWT
	api.POST("/payments/webhook", paymentHandler.Webhook)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(a.jwtService))
	protected.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute))

	marketer := middleware.RequireRole(string(entity.RoleMarketer))
	manager := middleware.RequireRole(string(entity.RoleManager))
	marketerOrManager := middleware.RequireRole(string(entity.RoleMarketer), string(entity.RoleManager))
	admin := middleware.RequireRole(string(entity.RoleAdmin))

	{
		protected.POST("/leads", marketer, leadHandler.CreateLead)
		protected.GET("/leads/mine", marketer, leadHandler.ListMyLeads)
		protected.POST("/leads/:id/publish", marketer, leadHandler.PublishLead)
		protected.GET("/leads", leadHandler.ListPublished)
		protected.GET("/leads/:id/full", leadHandler.GetFullInfo)

		protected.POST("/orders/:lead_id", manager, orderHandler.PurchaseLead)
		protected.GET("/orders", manager, orderHandler.ListMyOrders)
		protected.GET("/orders/:id", manager, orderHandler.GetOrder)
		protected.GET("/orders/:id/payments", orderHandler.GetOrderPayments)

		protected.POST("/payments/:order_id", manager, paymentHandler.CreatePayment)

		protected.GET("/wallet", walletHandler.GetWallet)
		protected.GET("/wallet/transactions", walletHandler.GetTransactions)

		protected.POST("/payouts", marketerOrManager, payoutHandler.RequestPayout)
		protected.GET("/payouts", marketerOrManager, payoutHandler.ListMyPayouts)
		protected.GET("/payouts/:id", payoutHandler.GetPayout)

		protected.POST("/topups", marketerOrManager, topupHandler.RequestTopup)
		protected.GET("/topups", marketerOrManager, topupHandler.ListMyTopups)
		protected.GET("/topups/:id", topupHandler.GetTopup)
	}

	adminGroup := protected.Group("/admin", admin)
	{
		adminGroup.PUT("/leads/:id/status", adminHandler.UpdateLeadStatus)
		adminGroup.PUT("/orders/:id/cancel", adminHandler.CancelOrder)
		adminGroup.POST("/payments/:id/refund", paymentHandler.RefundPayment)
		adminGroup.GET("/audit", adminHandler.ListAudit)

		adminGroup.GET("/payouts", payoutHandler.ListPayouts)
		adminGroup.GET("/payouts/:id", payoutHandler.GetPayout)
		adminGroup.PUT("/payouts/:id/approve", payoutHandler.ApprovePayout)
		adminGroup.PUT("/payouts/:id/reject", payoutHandler.RejectPayout)
		adminGroup.PUT("/payouts/:id/complete", payoutHandler.CompletePayout)

		adminGroup.GET("/topups", topupHandler.ListTopups)
		adminGroup.GET("/topups/:id", topupHandler.GetTopup)
		adminGroup.PUT("/topups/:id/approve", topupHandler.ApproveTopup)
		adminGroup.PUT("/topups/:id/reject", topupHandler.RejectTopup)
	}

	return r
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down market service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Drain in-flight requests before closing their backends
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Market service exited")
	return nil
}
