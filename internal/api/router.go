package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stickpark/game-portal/internal/api/handler"
	"github.com/stickpark/game-portal/internal/api/middleware"
	"github.com/stickpark/game-portal/internal/core/service"
	"github.com/stickpark/game-portal/internal/infrastructure/config"
	mongodb "github.com/stickpark/game-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/stickpark/game-portal/internal/infrastructure/db/redis"
)

const tokenTTL = 7 * 24 * time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gameportal"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(client, db)
	gameRepo := mongodb.NewGameRepository(db)
	otpStore := redisdb.NewOTPStore(rdb)

	authService := service.NewAuthService(userRepo, gameRepo, cfg.JWTSecret, tokenTTL, cfg.DefaultTurns, log)
	accountService := service.NewAccountService(userRepo, otpStore, log)
	socialService := service.NewSocialService(userRepo, log)
	turnsService := service.NewTurnsService(userRepo, gameRepo, log)
	rankService := service.NewRankService(userRepo, gameRepo, log)
	gameService := service.NewGameService(gameRepo, log)
	searchService := service.NewSearchService(userRepo, gameRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(accountService, rankService)
	socialHandler := handler.NewSocialHandler(socialService)
	turnsHandler := handler.NewTurnsHandler(turnsService)
	gameHandler := handler.NewGameHandler(gameService)
	searchHandler := handler.NewSearchHandler(searchService)
	adminHandler := handler.NewAdminHandler(accountService)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC("admin")

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/v1/games", gameHandler.List)
	e.GET("/v1/games/:id", gameHandler.Get)
	e.GET("/v1/search", searchHandler.Search)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", auth)

	v1.GET("/users/me", userHandler.Me)
	v1.PUT("/users/me", userHandler.UpdateMe)
	v1.POST("/users/me/otp", userHandler.SendOTP)
	v1.POST("/users/me/otp/verify", userHandler.VerifyOTP)
	v1.GET("/users/:id", userHandler.View)
	v1.GET("/users/:id/ranks", userHandler.Ranks)

	v1.GET("/friends", socialHandler.ListFriends)
	v1.DELETE("/friends/:id", socialHandler.RemoveFriend)
	v1.GET("/friends/requests", socialHandler.ListRequests)
	v1.POST("/friends/requests", socialHandler.SendRequest)
	v1.POST("/friends/requests/:id/accept", socialHandler.AcceptRequest)
	v1.POST("/friends/requests/:id/reject", socialHandler.RejectRequest)
	v1.DELETE("/friends/requests/:id", socialHandler.CancelRequest)

	v1.GET("/turns", turnsHandler.Balances)
	v1.POST("/turns/transfer", turnsHandler.Transfer)

	// --- Admin routes ---
	admin := e.Group("/v1/admin", auth, adminOnly)
	admin.POST("/turns/grant", turnsHandler.Grant)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.SetRole)
	admin.PUT("/users/:id/lock", adminHandler.SetLock)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Game catalog management (admin) ---
	e.POST("/v1/games", gameHandler.Create, auth, adminOnly)
	e.PUT("/v1/games/:id", gameHandler.Update, auth, adminOnly)
	e.DELETE("/v1/games/:id", gameHandler.Delete, auth, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
