// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"blog-backend/pkg/container"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	c *container.Container
}

// startServices performs health checks and starts the health endpoint
func startServices(c *container.Container) error {
	log.Println("============================================")
	log.Println("🚀 Blog Worker Starting...")
	log.Println("============================================")

	checker := &HealthChecker{c: c}
	if err := checker.checkAll(); err != nil {
		log.Printf("❌ Health check failed: %v\n", err)
		return err
	}

	go startHealthCheckServer(c.Config.Jobs.WorkerHealthPort)
	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis Connection", h.c.Cache.Ping},
		{"PostgreSQL", h.c.DB.Ping},
		{"Object Storage", h.c.Storage.Ping},
	}

	for _, check := range checks {
		log.Printf("⏳ Checking %s...\n", check.name)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			log.Printf("❌ %s: %v\n", check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("✓ %s: OK\n", check.name)
	}

	return nil
}

// startHealthCheckServer starts HTTP server for health checks
func startHealthCheckServer(port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler)

	log.Printf("[Health] Starting health check server on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Printf("[Health] Failed to start: %v\n", err)
	}
}

// healthCheckHandler handles /health endpoint
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"UP","service":"blog-worker"}`))
}

// readyCheckHandler handles /ready endpoint (Kubernetes readiness probe)
func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"READY"}`))
}
