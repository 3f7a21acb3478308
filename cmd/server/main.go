package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/factscreen/internal/config"
	"github.com/agenthands/factscreen/internal/core"
	"github.com/agenthands/factscreen/internal/driver"
	"github.com/agenthands/factscreen/internal/llm"
	"github.com/agenthands/factscreen/internal/logging"
	"github.com/agenthands/factscreen/internal/server"
)

func main() {
	cfg, err := config.LoadOrDefault("")
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	if err := logging.Init(cfg.Server.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logging.Sync()

	log := logging.Get()
	log.Info("Starting fact screening server...")

	ctx := context.Background()

	source, err := driver.OpenSource(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open fact source", zap.String("kind", cfg.Source.Kind), zap.Error(err))
	}
	if source == nil {
		log.Info("No fact source configured, /screen/source is disabled")
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if errors.Is(err, llm.ErrNoProvider) {
		log.Info("No LLM provider configured, /repair is disabled")
		llmClient = nil
	} else if err != nil {
		log.Fatal("Failed to initialize LLM client", zap.Error(err))
	}

	screener := core.NewScreener(cfg, source, llmClient, log)
	defer screener.Close(context.Background())

	router := server.NewServer(screener, cfg, log).SetupRouter()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", screener.Backend.Name()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
