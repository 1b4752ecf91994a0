package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/inclusive-studai/internal/interface/http"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

type PreferencesModule struct {
	Handler *handlers.PreferencesHandler
	JWT     *helpers.JWTManager
}

func NewPreferencesModule(h *handlers.PreferencesHandler, jwt *helpers.JWTManager) *PreferencesModule {
	return &PreferencesModule{Handler: h, JWT: jwt}
}

func (m *PreferencesModule) Name() string { return "preferences" }

func (m *PreferencesModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.PATCH("/preferences", m.Handler.UpdatePreferences)
		auth.POST("/preferences/contrast/toggle", m.Handler.ToggleContrast)
		auth.PATCH("/consents", m.Handler.UpdateConsents)
	}
}
