package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/api"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/config"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/database"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

func main() {
	cfg := config.Load()

	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	if err := database.Seed(db, cfg.AdminUser, cfg.AdminPass); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	reportService := services.NewReportService(db)
	snapshotService := services.NewSnapshotService(db, cfg.SnapshotHour)
	exportService := services.NewExportService(db, reportService)
	importService := services.NewImportService(db)

	metrics.UpdateBusinessMetrics(db)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the snapshot worker in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in snapshot worker: %v - restarting in 30 seconds", r)
					}
				}()
				snapshotService.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Snapshot worker restarting after panic recovery...")
			}
		}
	}()

	router := api.SetupRouter(db, authService, reportService, snapshotService, exportService, importService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
