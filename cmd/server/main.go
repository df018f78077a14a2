package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/labels"
	"folio/internal/portfolio"
	"folio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := database.Open(cfg.Driver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	r := database.New(db, logger)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := r.Migrate(ctx); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	if cfg.DefaultCSV != "" {
		reloader := service.NewReloader(r, cfg.DefaultCSV, cfg.ReloadSchedule, logger)
		if err := reloader.Start(ctx); err != nil {
			logger.Fatalf("reloader: %v", err)
		}
	}

	catalog, err := labels.NewCatalog(cfg.LabelsFile)
	if err != nil {
		logger.Fatalf("labels: %v", err)
	}

	dash := service.NewDashboard(r, logger)
	h := handlers.NewHandler(r, dash, catalog, portfolio.NewFormatter(cfg.Currency), cfg.Language, logger)

	rg := gin.Default()
	h.Register(rg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: rg}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Infof("server starting on :%s (%s)", cfg.Port, cfg.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server: %v", err)
	}
}
