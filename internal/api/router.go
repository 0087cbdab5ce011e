package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loopdesk/chat-api/internal/api/handler"
	"github.com/loopdesk/chat-api/internal/api/middleware"
	"github.com/loopdesk/chat-api/internal/core/auth"
	"github.com/loopdesk/chat-api/internal/core/ports"
	"github.com/loopdesk/chat-api/internal/core/service"
	mongodb "github.com/loopdesk/chat-api/internal/infrastructure/db/mongo"
	redisdb "github.com/loopdesk/chat-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit may be nil (audit recording disabled, used by tests).
func NewRouter(db *mongo.Database, rdb *redis.Client, issuer *auth.TokenIssuer, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("chat"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	authService := service.NewAuthService(userRepo, issuer, audit, log)
	replier := redisdb.NewReplyCache(rdb, service.NewEchoReplier(), log)
	messageService := service.NewMessageService(messageRepo, replier, log)

	authHandler := handler.NewAuthHandler(authService)
	messageHandler := handler.NewMessageHandler(messageService)
	guard := middleware.Guard(issuer, userRepo)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)

	// --- Message routes (bearer token required) ---
	messages := e.Group("/messages", guard)
	messages.GET("", messageHandler.List)
	messages.POST("", messageHandler.Create)
	messages.PUT("/:id", messageHandler.Update)
	messages.DELETE("/:id", messageHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
