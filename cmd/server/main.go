package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"skincare-backend/config"
	"skincare-backend/internal/auth"
	"skincare-backend/internal/database"
	"skincare-backend/internal/handlers"
	"skincare-backend/internal/mail"
	"skincare-backend/internal/middleware"
	"skincare-backend/internal/notify"
	"skincare-backend/internal/otp"
	"skincare-backend/internal/repository"
	"skincare-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure zerolog based on config
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logLevel, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	output := os.Stdout
	if cfg.Logger.OutputPath != "" {
		file, err := os.OpenFile(cfg.Logger.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			output = file
		}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.RFC3339,
	})
}

func main() {
	cfg := config.Get()

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()

	// Run database migrations after database initialization
	if err := database.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Redis backs the OTP store and the notify channel
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	tokenRepo := repository.NewTokenRepository(database.GetDB())
	blocklist := auth.NewBlocklistService(tokenRepo)
	authService := auth.NewAuthService(userRepo, blocklist, cfg)

	otpTTL := time.Duration(cfg.OTP.TTLMinutes) * time.Minute
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	otpService := otp.NewService(otp.NewRedisStore(rdb), mail.NewSendGridMailer(&cfg.Mail), otpTTL)
	publisher := notify.NewPublisher(rdb)

	// Periodic blocklist sweep
	if err := scheduler.Initialize(blocklist, cfg.Auth.CleanupInterval); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	defer scheduler.Stop()

	// Create new Fiber instance
	app := fiber.New(fiber.Config{
		AppName:      "Skincare API",
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Error().Err(err).
				Str("path", c.Path()).
				Str("ip", c.IP()).
				Msg("Error handling request")

			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:8090,http://127.0.0.1:8090,http://localhost:5173,http://127.0.0.1:5173",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check routes
	app.Get("/health", healthCheck)
	app.Get("/ready", readinessCheck)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	otpHandler := handlers.NewOTPHandler(otpService)
	notifyHandler := handlers.NewNotifyHandler(publisher)

	// API routes
	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)
	authGroup.Post("/refresh", middleware.Protected(authService), authHandler.RefreshToken)
	authGroup.Get("/me", middleware.Protected(authService), authHandler.GetMe)

	v1.Post("/send-otp", otpHandler.SendOTP)
	v1.Post("/verify-otp", otpHandler.VerifyOTP)
	v1.Post("/notify", notifyHandler.SendNotify)

	// Start server in a goroutine
	serverAddr := cfg.Server.Host + ":" + cfg.Server.Port
	go func() {
		if err := app.Listen(serverAddr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
}

// Health check handler
func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// Readiness check handler
func readinessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}
