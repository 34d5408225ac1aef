package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// instancesHandler serves point-in-time snapshots of every tracked instance.
func (a *App) instancesHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Instances endpoint hit.", "remote_addr", r.RemoteAddr)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.manager.GetResourceInstances()); err != nil {
		a.logger.Error("Failed to encode instance snapshots", "error", err)
	}
}

// typesHandler serves the registered category names.
func (a *App) typesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.manager.RegisteredResourceTypes()); err != nil {
		a.logger.Error("Failed to encode category names", "error", err)
	}
}

// statusMux builds the status server's routing table.
func (a *App) statusMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/instances", a.instancesHandler)
	mux.HandleFunc("/types", a.typesHandler)
	return mux
}

// startStatusServer initializes and runs the pool status HTTP server.
func (a *App) startStatusServer(port int) *http.Server {
	a.logger.Debug("Configuring status server.")
	mux := a.statusMux()

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		a.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()

	return srv
}

// closeStatusServer shuts the status server down gracefully.
func (a *App) closeStatusServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down status server...")
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("Status server shutdown failed", "error", err)
		return
	}
	a.logger.Debug("Status server shut down gracefully.")
}
