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

	"it-inventory/internal/config"
	"it-inventory/internal/database"
	"it-inventory/internal/server"
	"it-inventory/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := cfg.Logger()
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.Init(database.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DBDSN,
		Attempts:   cfg.DBConnectAttempts,
		RetryDelay: cfg.DBRetryDelay,
		Logger:     log,
	})
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	recorder := database.NewChangeLogRecorder()
	clock := services.SystemClock{}
	r := server.NewRouter(cfg, log, server.Services{
		Assets: services.NewAssetService(db, recorder, clock, log),
		Staff:  services.NewStaffService(db, recorder, clock, log, cfg.PageSize),
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      corsHandler.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server exited")
}
