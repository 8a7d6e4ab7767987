package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"adminnotice/panel/internal/admin"
	"adminnotice/panel/internal/config"
	"adminnotice/panel/internal/dismissal"
	"adminnotice/panel/internal/handler"
	"adminnotice/panel/internal/hook"
	"adminnotice/panel/internal/i18n"
	"adminnotice/panel/internal/plugin/noticeexample"
	"adminnotice/panel/internal/repository"
	"adminnotice/panel/internal/service"
	"adminnotice/panel/pkg/crypto"
	jwtpkg "adminnotice/panel/pkg/jwt"
)

func main() {
	// hash-password <password> prints a bcrypt hash for admin.users[].password_hash.
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := crypto.HashPassword(os.Args[2])
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	configPath := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// 1. Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Initialize transient store (Redis or in-memory)
	var transients repository.TransientStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		transients = repository.NewRedisTransientStore(redisClient, cfg.Database.Redis.KeyPrefix)
		logger.Info("using Redis transient store")
	case "memory":
		transients = repository.NewMemoryTransientStore()
		logger.Info("using in-memory transient store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 4. Initialize admin users and token manager
	userRepo, err := repository.NewStaticAdminUserRepository(cfg.Admin.Users)
	if err != nil {
		logger.Fatal("invalid admin users", zap.Error(err))
	}
	if len(cfg.Admin.Users) == 0 {
		logger.Warn("no admin users configured; admin screens are unreachable")
	}
	signingKey := cfg.JWT.SigningKey
	if signingKey == "" {
		signingKey, err = crypto.GenerateSigningKey()
		if err != nil {
			logger.Fatal("failed to generate signing key", zap.Error(err))
		}
		logger.Warn("jwt.signing_key not set; sessions will not survive a restart")
	}
	jwtManager := jwtpkg.NewManager(signingKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, jwtManager)

	// 5. Initialize the admin panel and plugins
	dispatcher := hook.NewDispatcher()
	panel := admin.NewPanel(dispatcher, i18n.NewBundle(), cfg.Admin.BaseURL, logger)

	settingsURL := panel.AdminURL(admin.PathAdmin + "?page=" + dismissal.SettingsSlug)
	tracker := dismissal.NewTracker(transients, settingsURL, cfg.Notice.DismissTTL, logger.Named("dismissal"))
	noticeexample.New(tracker).Register(dispatcher)

	if err := panel.Boot(); err != nil {
		logger.Fatal("failed to boot admin panel", zap.Error(err))
	}

	// 6. Initialize handlers and router
	authHandler := handler.NewAuthHandler(authService, panel.AdminURL(""), cfg.Server.Mode == "release")
	panelHandler := handler.NewPanelHandler(panel, logger)

	router, err := handler.SetupRouter(cfg, logger, authService, authHandler, panelHandler)
	if err != nil {
		logger.Fatal("failed to setup router", zap.Error(err))
	}

	// 7. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 8. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("admin", cfg.Admin.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
