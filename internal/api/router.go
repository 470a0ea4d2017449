package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/groupcast/groupcast-api/internal/api/handler"
	"github.com/groupcast/groupcast-api/internal/api/middleware"
	"github.com/groupcast/groupcast-api/internal/auth"
	"github.com/groupcast/groupcast-api/internal/core/ports"
	"github.com/groupcast/groupcast-api/internal/core/service"
	"github.com/groupcast/groupcast-api/internal/infrastructure/config"
	mongodb "github.com/groupcast/groupcast-api/internal/infrastructure/db/mongo"
	redisdb "github.com/groupcast/groupcast-api/internal/infrastructure/db/redis"
	"github.com/groupcast/groupcast-api/internal/infrastructure/oauth"
	"github.com/groupcast/groupcast-api/internal/infrastructure/session"
	"github.com/groupcast/groupcast-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// recorder receives audit entries from every service; the caller owns its
// lifecycle.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, recorder ports.ActivityRecorder) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("groupcast"))

	// --- Credential primitives ---
	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	seq := mongodb.NewSequence(db)
	userRepo := mongodb.NewUserRepository(db, seq)
	adminRepo := mongodb.NewAdminRepository(db, seq)
	groupRepo := mongodb.NewGroupRepository(db, seq)
	postRepo := mongodb.NewPostRepository(db, seq)
	feedRepo := mongodb.NewFeedRepository(db, seq)
	packageRepo := mongodb.NewPackageRepository(db, seq)
	paymentRepo := mongodb.NewPaymentRepository(db, seq)
	settingRepo := mongodb.NewSettingRepository(db, seq)
	activityRepo := mongodb.NewActivityRepository(db, seq)

	throttle := redisdb.NewLoginThrottle(rdb)
	captureGuard := redisdb.NewCaptureGuard(rdb)

	sessions := session.NewCookieManager(cfg.SessionCookieName, cfg.SessionTTL, cfg.Env == "production", verifier, userRepo)
	provider := oauth.NewProvider(oauth.Config{
		AuthURL:      cfg.OAuth.AuthURL,
		TokenURL:     cfg.OAuth.TokenURL,
		ProfileURL:   cfg.OAuth.ProfileURL,
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
	})

	// --- Services ---
	userService := service.NewUserService(userRepo, cfg.OwnerOpenID)
	adminAuthService := service.NewAdminAuthService(adminRepo, throttle, recorder, verifier, cfg.AdminTokenTTL)
	groupService := service.NewGroupService(groupRepo, recorder)
	postService := service.NewPostService(postRepo, recorder)
	feedService := service.NewFeedService(feedRepo, recorder)
	catalogService := service.NewCatalogService(packageRepo)
	statsService := service.NewStatsService(groupRepo, postRepo)
	paymentService := service.NewPaymentService(paymentRepo, packageRepo, userRepo, captureGuard, recorder)
	adminService := service.NewAdminService(userRepo, packageRepo, paymentRepo, settingRepo, activityRepo, recorder)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(provider, userService, sessions, cfg.LoginRedirectURL)
	adminAuthHandler := handler.NewAdminAuthHandler(adminAuthService)
	groupHandler := handler.NewGroupHandler(groupService)
	postHandler := handler.NewPostHandler(postService)
	feedHandler := handler.NewFeedHandler(feedService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	statsHandler := handler.NewStatsHandler(statsService)
	paymentHandler := handler.NewPaymentHandler(paymentService, handler.PayPalInfo{
		ClientID:      cfg.PayPal.ClientID,
		BusinessEmail: cfg.PayPal.BusinessEmail,
		Mode:          cfg.PayPal.Mode,
	})
	adminHandler := handler.NewAdminHandler(adminService)

	// --- Health probes and operational endpoints (no identity required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- API routes ---
	// Every /v1 request passes through identity resolution. Guards below
	// decide per route group which slot of the identity must be filled.
	v1 := e.Group("/v1", middleware.Identity(sessions, verifier, userRepo, adminRepo))

	// Public surface.
	v1.GET("/auth/login", authHandler.Login)
	v1.GET("/auth/callback", authHandler.Callback)
	v1.POST("/admin/auth/login", adminAuthHandler.Login)
	v1.GET("/packages", catalogHandler.Packages)
	v1.GET("/payments/config", paymentHandler.Config)
	v1.POST("/payments/capture", paymentHandler.Capture)

	// End-user surface: a resolved session or user token is required.
	user := v1.Group("", middleware.RequireUser)
	user.GET("/auth/me", authHandler.Me)
	user.POST("/auth/logout", authHandler.Logout)

	user.GET("/groups", groupHandler.List)
	user.POST("/groups", groupHandler.Create)
	user.PATCH("/groups/:id", groupHandler.Update)
	user.DELETE("/groups/:id", groupHandler.Delete)

	user.GET("/posts", postHandler.List)
	user.POST("/posts", postHandler.Create)
	user.GET("/posts/:id", postHandler.Get)
	user.PATCH("/posts/:id", postHandler.Update)
	user.DELETE("/posts/:id", postHandler.Delete)

	user.GET("/feeds", feedHandler.List)
	user.POST("/feeds", feedHandler.Create)
	user.PATCH("/feeds/:id", feedHandler.Update)
	user.DELETE("/feeds/:id", feedHandler.Delete)

	user.GET("/payments/history", paymentHandler.History)
	user.POST("/payments/subscribe", paymentHandler.Subscribe)

	user.GET("/stats/dashboard", statsHandler.Dashboard)

	// Admin-role surface: an end user whose role is admin. An operator
	// bearer token does not open this group.
	adminRole := v1.Group("/admin", middleware.RequireAdminRole)
	adminRole.GET("/overview", adminHandler.Overview)

	// Operator surface: a valid admin bearer token. An admin-role cookie
	// does not open this group.
	op := v1.Group("/admin", middleware.RequireAdminToken)
	op.GET("/dashboard", adminHandler.Dashboard)

	op.GET("/users", adminHandler.ListUsers)
	op.GET("/users/:id", adminHandler.GetUser)
	op.PATCH("/users/:id", adminHandler.UpdateUser)
	op.DELETE("/users/:id", adminHandler.DeleteUser)
	op.POST("/users/:id/access", adminHandler.GrantAccess)

	op.GET("/packages", adminHandler.ListPackages)
	op.POST("/packages", adminHandler.CreatePackage)
	op.PATCH("/packages/:id", adminHandler.UpdatePackage)
	op.DELETE("/packages/:id", adminHandler.DeletePackage)

	op.GET("/payments", adminHandler.ListPayments)
	op.POST("/payments", adminHandler.RecordPayment)

	op.GET("/settings", adminHandler.ListSettings)
	op.PUT("/settings", adminHandler.UpdateSettings)

	op.GET("/logs", adminHandler.ListLogs)

	return e, nil
}
