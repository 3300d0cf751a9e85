package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tainadev/microblog-go/initialization"
	"github.com/tainadev/microblog-go/internal/adapter/database"
	adapterhttp "github.com/tainadev/microblog-go/internal/adapter/http"
	"github.com/tainadev/microblog-go/internal/app/auth"
	"github.com/tainadev/microblog-go/internal/app/tweet"
	"github.com/tainadev/microblog-go/internal/app/user"
	"github.com/tainadev/microblog-go/internal/infra/metrics"
	"github.com/tainadev/microblog-go/internal/infra/middleware"
	"github.com/tainadev/microblog-go/pkg/cache"
	"github.com/tainadev/microblog-go/pkg/config"
	"github.com/tainadev/microblog-go/pkg/security"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// App agrega as dependências da aplicação já conectadas
type App struct {
	Logger       *zap.Logger
	Config       *config.Config
	DB           *database.Database
	Middleware   *middleware.Middleware
	UserHandler  *adapterhttp.UserHandler
	TweetHandler *adapterhttp.TweetHandler
	Health       *adapterhttp.HealthHandler
	Cache        cache.Cache
	APIMetrics   *metrics.APIMetrics
}

// NewApp cria uma nova instância da aplicação com todas as dependências
// injetadas e o seed de bootstrap aplicado
func NewApp(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (*App, error) {
	// Configuração do banco de dados
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
	}

	db, err := database.NewDatabase(ctx, dbConfig, zapLogger)
	if err != nil {
		return nil, err
	}

	// Métricas e cache de dados de referência
	apiMetrics := metrics.NewAPIMetrics()
	dataCache := newCache(cfg.Cache, zapLogger)

	// Repositórios
	userRepo := database.NewUserRepository(db.DB(), zapLogger)
	roleRepo := database.NewRoleRepository(db.DB(), zapLogger)
	tweetRepo := database.NewTweetRepository(db.DB(), zapLogger)

	// Primitivas de segurança
	keyManager, err := security.NewKeyManager(cfg.Auth, zapLogger)
	if err != nil {
		return nil, err
	}
	hasher := security.NewPasswordHasher()

	// Seed de bootstrap: roles e usuário administrador
	seeder := initialization.NewSeeder(userRepo, roleRepo, hasher, cfg.Seed, zapLogger)
	if err := seeder.Run(ctx); err != nil {
		return nil, err
	}

	// Serviços
	authService := auth.NewService(keyManager, hasher, userRepo, zapLogger)
	userService := user.NewService(userRepo, roleRepo, hasher, dataCache, zapLogger)
	tweetService := tweet.NewService(tweetRepo, userRepo, zapLogger)

	// Middlewares e handlers
	middlewares := middleware.NewMiddleware(zapLogger, keyManager, apiMetrics)
	userHandler := adapterhttp.NewUserHandler(userService, authService, zapLogger)
	tweetHandler := adapterhttp.NewTweetHandler(tweetService, zapLogger)
	healthHandler := adapterhttp.NewHealthHandler(db, zapLogger)

	return &App{
		Logger:       zapLogger,
		Config:       cfg,
		DB:           db,
		Middleware:   middlewares,
		UserHandler:  userHandler,
		TweetHandler: tweetHandler,
		Health:       healthHandler,
		Cache:        dataCache,
		APIMetrics:   apiMetrics,
	}, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	// Middleware global
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.Metrics())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	// Rotas públicas: registro e login não exigem token
	router.POST("/users", a.UserHandler.RegisterUser)
	router.POST("/login", a.UserHandler.Login)

	router.GET("/health", a.Health.HealthCheck)
	router.GET("/health/readiness", a.Health.ReadinessCheck)

	// Endpoint de métricas para Prometheus
	if a.Config.Metrics.Enabled {
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(promhttp.Handler()))
	}

	// Rotas protegidas: toda requisição revalida o token
	protected := router.Group("")
	protected.Use(a.Middleware.Authenticate)
	{
		protected.GET("/feed", a.TweetHandler.Feed)
		protected.POST("/tweets", a.TweetHandler.CreateTweet)
		protected.DELETE("/tweets/:id", a.TweetHandler.DeleteTweet)

		// Listagem de usuários exige adicionalmente o scope ADMIN
		protected.GET("/users", a.Middleware.RequireAdmin, a.UserHandler.ListUsers)
	}
}

// newCache seleciona o backend de cache conforme a configuração. Uma falha
// ao conectar ao Redis cai para o cache em memória em vez de impedir o
// startup.
func newCache(cfg config.CacheConfig, zapLogger *zap.Logger) cache.Cache {
	if !cfg.Enabled {
		return &cache.NoOpCache{}
	}

	if cfg.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, zapLogger)
		if err == nil {
			return redisCache
		}
		zapLogger.Warn("Redis indisponível, usando cache em memória", zap.Error(err))
	}

	return cache.NewMemoryCache(cfg.TTL, 2*cfg.TTL, zapLogger)
}

// gormLogLevel converte o nível textual da configuração para o GORM
func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// String descreve a aplicação nos logs de startup
func (a *App) String() string {
	return fmt.Sprintf("microblog (driver=%s, metrics=%t, tracing=%t)",
		a.Config.Database.Driver, a.Config.Metrics.Enabled, a.Config.Tracing.Enabled)
}
