package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gildecio/ezion/internal/controller"
	"github.com/gildecio/ezion/internal/core"
	"github.com/gildecio/ezion/internal/middlewareinternal"
	"github.com/gildecio/ezion/internal/repository"
	"github.com/gildecio/ezion/internal/service"
	"github.com/gildecio/ezion/internal/util/validator"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg         *Config
	Router      *chi.Mux
	db          *repository.Database
	redis       *redis.Client
	tokens      repository.TokenStore
	limiter     *middlewareinternal.LimiterStore
	authService core.AuthService
	Logger      *zap.Logger
	Server      *http.Server
}

// New connects to the database and the token store and builds the router.
func New(ctx context.Context, cfg *Config, logger *zap.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		Logger: logger,
	}

	if err := app.initDB(); err != nil {
		return nil, err
	}

	if err := app.initTokenStore(ctx); err != nil {
		app.db.Close()
		return nil, err
	}

	app.init()
	return app, nil
}

// newWithDeps builds the router around already opened dependencies.
func newWithDeps(cfg *Config, db *repository.Database, tokens repository.TokenStore, logger *zap.Logger) *App {
	app := &App{
		cfg:    cfg,
		db:     db,
		tokens: tokens,
		Logger: logger,
	}
	app.init()
	return app
}

func (a *App) init() {
	if a.cfg.JWTSecretKey == "" {
		a.cfg.JWTSecretKey = uuid.NewString() + uuid.NewString()
		a.Logger.Warn("JWT secret key not set, using a random one; tokens will not survive a restart")
	}

	a.limiter = middlewareinternal.NewLimiterStore(a.cfg.LoginRPS, a.cfg.LoginBurst)
	a.Router = chi.NewRouter()
	a.initRouter()
}

func (a *App) Run(ctx context.Context) error {
	if a.cfg.AdminPassword != "" {
		if err := a.authService.EnsureAdmin(ctx, a.cfg.AdminLogin, a.cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to bootstrap administrator: %w", err)
		}
	}

	a.limiter.StartJanitor(ctx)

	a.Server = &http.Server{
		Addr:              a.cfg.RunAddress,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting HTTP server", zap.String("address", a.cfg.RunAddress))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	a.Logger.Info("Shutting down server...")
	return a.shutdown()
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("Redis close error", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn("Database close error", zap.Error(err))
		}
	}
}

func (a *App) initDB() error {
	dbConfig := repository.DatabaseConfig{
		DSN:            a.cfg.DatabaseURI,
		MigrationsPath: a.cfg.MigrationsPath,
	}

	db, err := repository.NewDatabase(dbConfig)
	if err != nil {
		a.Logger.Error("Database initialization failed",
			zap.String("dsn", a.cfg.MaskDBPassword()),
			zap.Error(err))
		return fmt.Errorf("database initialization failed: %w", err)
	}

	a.db = db
	a.Logger.Info("Database initialized successfully",
		zap.String("migrations_path", a.cfg.MigrationsPath))

	return nil
}

func (a *App) initTokenStore(ctx context.Context) error {
	if a.cfg.RedisAddr == "" {
		a.tokens = repository.NewMemoryTokenStore()
		a.Logger.Info("Using in-memory token revocation store")
		return nil
	}

	tokens, client, err := repository.NewRedisTokenStore(ctx, a.cfg.RedisAddr)
	if err != nil {
		a.Logger.Error("Redis initialization failed",
			zap.String("addr", a.cfg.RedisAddr),
			zap.Error(err))
		return fmt.Errorf("redis initialization failed: %w", err)
	}

	a.tokens = tokens
	a.redis = client
	a.Logger.Info("Using redis token revocation store", zap.String("addr", a.cfg.RedisAddr))
	return nil
}

func (a *App) initRouter() {
	a.Router.Use(middleware.RequestID)
	if a.cfg.TrustProxy {
		// Forwarding headers are client-controlled unless a proxy rewrites them.
		a.Router.Use(middleware.RealIP)
	}
	a.Router.Use(middleware.Logger)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.Compress(5))

	v := validator.New()
	logger := a.Logger

	// Repositories
	empresaRepo := repository.NewEmpresaRepository(a.db)
	unidadeRepo := repository.NewUnidadeRepository(a.db)
	localRepo := repository.NewLocalRepository(a.db)
	usuarioRepo := repository.NewUsuarioRepository(a.db)

	// Services
	a.authService = service.NewAuthService(usuarioRepo, empresaRepo, a.tokens, v, service.AuthConfig{
		SecretKey:  a.cfg.JWTSecretKey,
		AccessTTL:  a.cfg.TokenTTL,
		RefreshTTL: a.cfg.RefreshTTL,
	}, logger)
	empresaService := service.NewEmpresaService(empresaRepo, v, logger)
	unidadeService := service.NewUnidadeService(unidadeRepo, v, logger)
	localService := service.NewLocalService(localRepo, empresaRepo, v, logger)

	// Controllers
	authController := controller.NewAuthController(a.authService, v, logger, a.cfg.TokenTTL)
	empresaController := controller.NewEmpresaController(empresaService, logger)
	unidadeController := controller.NewUnidadeController(unidadeService, logger)
	localController := controller.NewLocalController(localService, logger)
	cnpjController := controller.NewCNPJController()
	healthController := controller.NewHealthController(a.db, logger)

	authMiddleware := middlewareinternal.JWTAuthMiddleware(a.authService)

	// Public routes
	a.Router.Get("/api/health", healthController.Health)
	a.Router.Route("/api/cnpj", func(r chi.Router) {
		r.Get("/validar", cnpjController.Validar)
		r.Post("/validar", cnpjController.Validar)
		r.Get("/mascara", cnpjController.Mascara)
	})

	a.Router.Route("/api/auth", func(r chi.Router) {
		r.With(middlewareinternal.RateLimit(a.limiter)).Post("/login", authController.Login)
		r.Post("/register", authController.Register)
		r.Post("/refresh", authController.Refresh)
		r.Get("/empresas", authController.Empresas)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", authController.Me)
			r.Post("/logout", authController.Logout)
		})
	})

	// Protected routes
	a.Router.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Mount("/api/empresas", empresaController.Routes())
		r.Mount("/api/unidades", unidadeController.Routes())
		r.Mount("/api/locais", localController.Routes())
	})
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Server.Shutdown(ctx)
}
