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
	"github.com/tainadev/microblog-go/internal/app"
	"github.com/tainadev/microblog-go/pkg/config"
	"github.com/tainadev/microblog-go/pkg/logging"
	"github.com/tainadev/microblog-go/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	// Inicializar logger
	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Carregar configuração
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", zap.Error(err))
	}

	ctx := context.Background()

	// Inicializar o tracer se estiver habilitado
	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(
			ctx,
			cfg.Tracing.ServiceName,
			cfg.Tracing.Endpoint,
			cfg.Tracing.SamplingRatio,
			logger,
		)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado",
				zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	// Inicializar aplicação (banco, seed, serviços, handlers)
	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.DB.Close()

	// Configurar o router
	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	application.RegisterRoutes(router)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Iniciar o servidor em uma goroutine
	go func() {
		var err error

		if cfg.Server.TLS && cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
			logger.Info("Iniciando servidor HTTPS",
				zap.String("addr", server.Addr),
				zap.String("certFile", cfg.Server.CertFile))
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
			err = server.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	// Esperar por sinal de interrupção para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Erro ao encerrar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado com sucesso")
}
