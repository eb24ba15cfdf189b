package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/puskesmas-sedau/robot-ssa/internal/api"
	"github.com/puskesmas-sedau/robot-ssa/internal/batch"
	"github.com/puskesmas-sedau/robot-ssa/internal/config"
	"github.com/puskesmas-sedau/robot-ssa/internal/forms"
	"github.com/puskesmas-sedau/robot-ssa/internal/history"
	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/pacer"
	"github.com/puskesmas-sedau/robot-ssa/internal/portal"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from a stale robot process occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Robot SSA - Puskesmas Sedau report uploader")

	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("PORTAL_BASE_URL") != "" {
		log.Println("[config] PORTAL_BASE_URL env override active")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}
	log.Printf("Pre-flight check passed: port %d is available", port)

	store := history.NewStore(cfg.History.FilePath)
	resolver := forms.NewResolver(cfg.MappingFormulir)
	client := portal.NewClient(cfg.Portal)
	submitter := portal.NewSubmitter(client, resolver, store)

	pace := pacer.New(cfg.Batch.DelayMin(), cfg.Batch.DelayMax())
	runner := batch.NewRunner(submitter, pace)

	handlers := api.NewHandlers(cfg, runner, store)
	router := api.SetupRoutes(handlers, cfg.App.Password)

	addr := fmt.Sprintf("%s:%d", host, port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
		// No global timeouts: an upload batch runs for minutes with
		// deliberate pacing between items.
	}

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s (portal: %s)", addr, cfg.Portal.BaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized — server is ready")

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
