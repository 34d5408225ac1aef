package app

import (
	"context"
	"fmt"

	"github.com/vk/respoolgo/internal/ctxlog"
)

// Run executes the main application logic: provision every declared pool
// instance, then, if a status port is configured, serve status queries until
// the context is cancelled.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.logger.Info("Resource categories registered:",
		"count", len(a.registry.CategoryNames()), "names", a.registry.CategoryNames())

	for _, def := range a.config.Pool.Instances {
		category, ok := a.registry.Category(def.CategoryType)
		if !ok {
			return fmt.Errorf("instance '%s.%s': unknown resource category '%s'",
				def.CategoryType, def.Name, def.CategoryType)
		}
		id, err := a.manager.CreateResourceInstance(ctx, category, def.Capabilities)
		if err != nil {
			return fmt.Errorf("failed to provision instance '%s.%s': %w",
				def.CategoryType, def.Name, err)
		}
		a.logger.Info("Provisioned resource instance.",
			"category", def.CategoryType, "name", def.Name, "id", id)
	}

	statuses := a.manager.GetResourceInstances()
	a.logger.Info("🚀 Pool provisioned.", "instances", len(statuses))

	if appConfig.StatusPort > 0 {
		srv := a.startStatusServer(appConfig.StatusPort)
		defer a.closeStatusServer(srv)
		a.logger.Info("Serving pool status until interrupted.")
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
