package router

import (
	"github.com/oksasatya/inclusive-studai/internal/container"
	handlers "github.com/oksasatya/inclusive-studai/internal/interface/http"
	"github.com/oksasatya/inclusive-studai/internal/router/modules"
)

// InitModules builds the handlers from c and registers every module.
// It should be called once during application startup.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config
	auth := handlers.NewAuthHandler(c.Service, c.Contrast, c.Logger, cfg.CookieDomain, cfg.CookieSecure)

	r.Add(modules.NewAuthModule(auth, c.JWT, c.Redis, cfg.LoginRatePerMin))
	r.Add(modules.NewDashboardModule(handlers.NewDashboardHandler(c.Service, c.Logger), c.JWT))
	r.Add(modules.NewPreferencesModule(handlers.NewPreferencesHandler(c.Service, c.Logger), c.JWT))
	r.Add(modules.NewReaderModule(handlers.NewReaderHandler(c.Service, c.Logger), c.JWT, c.Redis))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
