package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/somang-church/website-api/internal/auth"
	"github.com/somang-church/website-api/internal/config"
	"github.com/somang-church/website-api/internal/db"
	"github.com/somang-church/website-api/internal/handler"
	"github.com/somang-church/website-api/internal/middleware"
	"github.com/somang-church/website-api/internal/repository"
	"github.com/somang-church/website-api/internal/service"
	"github.com/somang-church/website-api/internal/youtube"
	"github.com/somang-church/website-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConnections),
		MinConns:        int32(cfg.Database.MinConnections),
		MaxConnLifetime: cfg.Database.MaxLifetime,
		MaxConnIdleTime: cfg.Database.MaxIdleTime,
	})
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close(pool)

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	reviewRepo := repository.NewReviewRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	sermonRepo := repository.NewSermonRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)

	// Decision publishing is optional; without a broker decisions are only
	// persisted.
	var publisher *service.DecisionPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = service.NewDecisionPublisher(&cfg.RabbitMQ)
		if err != nil {
			logger.Log.Warn("Failed to connect to RabbitMQ, review decisions will not be published",
				zap.Error(err),
			)
		} else {
			defer publisher.Close()
		}
	}

	var notifier service.DecisionNotifier
	if publisher != nil {
		notifier = publisher
	}
	reviewService := service.NewReviewService(reviewRepo, notifier)

	verifier := auth.NewVerifier(cfg.Admin.Password)
	if cfg.Admin.Password == "" {
		logger.Log.Warn("Admin password not configured (ADMIN_PASSWORD), admin login is disabled")
	}

	scraper := youtube.NewScraper(nil, cfg.YouTube.FetchesPerSecond)

	// Data API access is optional; without a key the stats endpoints answer
	// with a configuration error.
	var statsClient *youtube.Client
	if cfg.YouTube.APIKey != "" {
		statsClient = youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.UploadsPlaylistID, nil)
	} else {
		logger.Log.Info("YouTube API key not configured (YOUTUBE_API_KEY), stats endpoints are disabled")
	}

	authHandler := handler.NewAuthHandler(verifier, cfg.Admin.CookieSecure)
	reviewHandler := handler.NewReviewHandler(reviewService)
	noticeHandler := handler.NewNoticeHandler(noticeRepo)
	sermonHandler := handler.NewSermonHandler(sermonRepo)
	settingHandler := handler.NewSettingHandler(settingRepo)
	newcomerHandler := handler.NewNewcomerHandler(inquiryRepo)
	youtubeHandler := handler.NewYouTubeHandler(statsClient, scraper, settingRepo, cfg.YouTube.FeedLimit)
	healthHandler := handler.NewHealthHandler(pool, publisher)

	router := setupRouter(
		verifier,
		authHandler,
		reviewHandler,
		noticeHandler,
		sermonHandler,
		settingHandler,
		newcomerHandler,
		youtubeHandler,
		healthHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("Server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			_ = server.Close()
		}

		logger.Log.Info("Server stopped")
	}
}

//nolint:funlen // route registration is a single linear listing
func setupRouter(
	verifier *auth.Verifier,
	authHandler *handler.AuthHandler,
	reviewHandler *handler.ReviewHandler,
	noticeHandler *handler.NoticeHandler,
	sermonHandler *handler.SermonHandler,
	settingHandler *handler.SettingHandler,
	newcomerHandler *handler.NewcomerHandler,
	youtubeHandler *handler.YouTubeHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())

	// Public surface
	router.POST("/api/admin/auth", authHandler.Login)
	router.DELETE("/api/admin/auth", authHandler.Logout)
	router.GET("/api/review/:token", reviewHandler.GetReview)
	router.PATCH("/api/review/:token", reviewHandler.SubmitDecision)
	router.GET("/api/notices", noticeHandler.ListPublicNotices)
	router.GET("/api/notices/:id", noticeHandler.GetNotice)
	router.GET("/api/sermons", sermonHandler.ListSermons)
	router.GET("/api/videos", youtubeHandler.PublicVideos)
	router.POST("/api/newcomer", newcomerHandler.CreateInquiry)

	// Admin surface, behind the session cookie
	admin := router.Group("/api/admin", middleware.AdminAuth(verifier))
	{
		admin.GET("/reviews", reviewHandler.ListReviews)
		admin.POST("/reviews", reviewHandler.CreateReview)
		admin.DELETE("/reviews", reviewHandler.DeleteReview)

		admin.GET("/notices", noticeHandler.ListNotices)
		admin.POST("/notices", noticeHandler.CreateNotice)
		admin.PUT("/notices", noticeHandler.UpdateNotice)
		admin.DELETE("/notices", noticeHandler.DeleteNotice)

		admin.GET("/sermons", sermonHandler.ListSermons)
		admin.POST("/sermons", sermonHandler.CreateSermon)
		admin.PUT("/sermons", sermonHandler.UpdateSermon)
		admin.DELETE("/sermons", sermonHandler.DeleteSermon)

		admin.GET("/settings", settingHandler.ListSettings)
		admin.PUT("/settings", settingHandler.UpsertSetting)

		admin.GET("/newcomer", newcomerHandler.ListInquiries)
		admin.PUT("/newcomer", newcomerHandler.UpdateInquiryStatus)

		admin.GET("/youtube/stats", youtubeHandler.Stats)
		admin.GET("/youtube/channel-videos", youtubeHandler.ChannelVideos)
		admin.POST("/youtube/resolve", youtubeHandler.Resolve)
	}

	// Operational surface
	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
