package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forgo/shepherd/api/internal/catalog"
	"github.com/forgo/shepherd/api/internal/config"
	"github.com/forgo/shepherd/api/internal/database"
	"github.com/forgo/shepherd/api/internal/email"
	"github.com/forgo/shepherd/api/internal/handler"
	"github.com/forgo/shepherd/api/internal/jobs"
	"github.com/forgo/shepherd/api/internal/metrics"
	"github.com/forgo/shepherd/api/internal/middleware"
	"github.com/forgo/shepherd/api/internal/repository"
	"github.com/forgo/shepherd/api/internal/service"
	"github.com/forgo/shepherd/api/pkg/jwt"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		PrivateKeyPEM:  cfg.JWT.PrivateKeyPEM,
		PublicKeyPEM:   cfg.JWT.PublicKeyPEM,
		Issuer:         cfg.JWT.Issuer,
		Audience:       cfg.JWT.Audience,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the ministry catalog
	ministries, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to load ministry catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("ministry catalog loaded", slog.Int("ministries", ministries.Len()))

	// Initialize mail transport
	mailer, err := newMailer(ctx, cfg.Email)
	if err != nil {
		slog.Error("failed to initialize mailer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var appMetrics *metrics.Metrics
	if cfg.Server.MetricsEnabled {
		appMetrics = metrics.New()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	resultRepo := repository.NewResultRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  tokenRepo,
	})

	invitationService := service.NewInvitationService(service.InvitationServiceConfig{
		Repo:      invitationRepo,
		Users:     userRepo,
		Mailer:    mailer,
		Metrics:   appMetrics,
		TTL:       cfg.Invitation.TTL,
		AcceptURL: cfg.Invitation.AcceptURL,
		Church:    cfg.Invitation.Church,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:            userRepo,
		TokenService:        tokenService,
		Invitations:         invitationService,
		RequireInvitation:   cfg.Invitation.Required,
		BootstrapAdminEmail: cfg.Invitation.BootstrapAdminEmail,
	})

	assessmentService := service.NewAssessmentService(service.AssessmentServiceConfig{
		Results: resultRepo,
		Metrics: appMetrics,
	})

	matchingService := service.NewMatchingService(service.MatchingServiceConfig{
		Records: assessmentService,
		Catalog: ministries,
		Metrics: appMetrics,
	})

	staffService := service.NewStaffService(service.StaffServiceConfig{
		Users:   userRepo,
		Results: resultRepo,
		Tokens:  tokenService,
	})

	// Initialize middleware state
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.Rate,
		Window: cfg.RateLimit.Window,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	idempotencyStore, closeStore := newIdempotencyStore(ctx, cfg.Redis)
	defer closeStore()

	// Background jobs
	sweeper := jobs.NewSweeper(jobs.SweeperConfig{
		Cleaners: map[string]jobs.Cleaner{
			"refresh_tokens": tokenService,
			"invitations":    invitationService,
		},
		Interval: cfg.Invitation.SweepInterval,
	})
	sweeper.Start()
	defer sweeper.Stop()

	// Routes
	routes := handler.RouterConfig{
		Validator:   tokenService,
		Health:      handler.NewHealthHandler(db, version),
		Auth:        handler.NewAuthHandler(authService, invitationService),
		Assessments: handler.NewAssessmentHandler(assessmentService),
		Matching:    handler.NewMatchingHandler(matchingService, staffService),
		Staff:       handler.NewStaffHandler(staffService, invitationService),
	}
	if appMetrics != nil {
		routes.Metrics = appMetrics.Handler()
	}
	mux := handler.NewRouter(routes)

	// Apply global middleware. OptionalAuth identifies the caller for rate
	// limiting and idempotency; routes still enforce Auth themselves.
	// Compress wraps Idempotency so cached bodies stay uncompressed. Metrics
	// sits innermost so it sees the pattern the mux matched.
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
		middleware.OptionalAuth(tokenService),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Metrics(appMetrics),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("version", version),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

func newMailer(ctx context.Context, cfg config.EmailConfig) (email.Mailer, error) {
	if cfg.Provider != config.EmailProviderSES {
		slog.Warn("email provider is log; invitations will not be delivered")
		return email.NewLogMailer(nil), nil
	}
	client, err := email.NewSESClient(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	return email.NewSESMailer(email.SESMailerConfig{
		Client:           client,
		From:             cfg.From,
		ConfigurationSet: cfg.ConfigurationSet,
	}), nil
}

// newIdempotencyStore uses Redis when configured and reachable, else memory
func newIdempotencyStore(ctx context.Context, cfg config.RedisConfig) (middleware.IdempotencyStore, func()) {
	if cfg.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			slog.Info("idempotency store: redis", slog.String("addr", cfg.Addr))
			return middleware.NewRedisIdempotencyStore(client, middleware.IdempotencyConfig{}), func() { _ = client.Close() }
		}
		slog.Warn("redis unreachable, using in-memory idempotency store",
			slog.String("addr", cfg.Addr),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
	}
	store := middleware.NewMemoryIdempotencyStore(middleware.IdempotencyConfig{})
	return store, store.Stop
}
