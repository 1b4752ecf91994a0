package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/inclusive-studai/pkg/response"
)

// Registry collects modules and shared middleware for the /api group.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// Add queues mod; a second module with the same name replaces the first.
func (r *Registry) Add(mod Module) {
	for i, m := range r.modules {
		if m.Name() == mod.Name() {
			r.modules[i] = mod
			return
		}
	}
	r.modules = append(r.modules, mod)
}

// Names lists the queued modules in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m.Name())
	}
	return out
}

// RegisterAll applies the middleware, mounts every module and adds
// GET /api/health. Call it once.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	names := r.Names()
	r.API.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"modules": names}, "ok", nil)
	})
}
