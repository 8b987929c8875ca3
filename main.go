package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"

	"compliance-backend/ai"
	"compliance-backend/config"
	"compliance-backend/controllers"
	"compliance-backend/database"
	"compliance-backend/middlewares"
	"compliance-backend/routes"
	"compliance-backend/services"
	"compliance-backend/storage"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration", zap.Error(err))
	}

	// ---- Database. The handle opens lazily so the service can boot while
	// the store is briefly unreachable; migration runs once connectivity is
	// confirmed.
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("database open", zap.Error(err))
	}
	go func() {
		for {
			if err := database.Ping(db, cfg.ConnectTimeout); err != nil {
				log.Warn("database unreachable, retrying", zap.Error(err))
				time.Sleep(5 * time.Second)
				continue
			}
			if err := database.AutoMigrate(db); err != nil {
				log.Error("migration failed", zap.Error(err))
			} else {
				log.Info("database ready")
			}
			return
		}
	}()

	// ---- Document storage
	var store storage.DocumentStore
	switch cfg.StorageDriver {
	case "s3":
		s3Store, err := storage.NewS3Store(context.Background(), cfg)
		if err != nil {
			log.Fatal("s3 storage", zap.Error(err))
		}
		store = s3Store
	default:
		store = storage.NewLocalStore(cfg.UploadDir)
	}

	// ---- Services
	authSvc := services.NewAuthService(db, cfg.JWTSecret, cfg.TokenLifetime)
	userSvc := services.NewUserService(db)
	clientSvc := services.NewClientService(db)
	ledgerSvc := services.NewLedgerService(db)
	accountingSvc := services.NewAccountingService(db)
	complianceSvc := services.NewComplianceService(db)
	documentSvc := services.NewDocumentService(db, store)
	aiStub := ai.NewStub()

	// ---- Fiber app with global error handler + body limit
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.NewErrorHandler(log),
		BodyLimit:    cfg.BodyLimitBytes,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: false, // using Bearer tokens, not cookies
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))

	routes.Register(app, routes.Deps{
		DB:                   db,
		Auth:                 authSvc,
		AuthController:       controllers.NewAuthController(authSvc),
		UserController:       controllers.NewUserController(userSvc),
		ClientController:     controllers.NewClientController(clientSvc),
		FinancialController:  controllers.NewFinancialController(ledgerSvc, accountingSvc),
		ComplianceController: controllers.NewComplianceController(complianceSvc),
		DocumentController:   controllers.NewDocumentController(documentSvc),
		AIController:         controllers.NewAIController(aiStub, aiStub, aiStub, aiStub),
	})

	log.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
