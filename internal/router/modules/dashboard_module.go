package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	handlers "github.com/oksasatya/inclusive-studai/internal/interface/http"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	JWT     *helpers.JWTManager
}

func NewDashboardModule(h *handlers.DashboardHandler, jwt *helpers.JWTManager) *DashboardModule {
	return &DashboardModule{Handler: h, JWT: jwt}
}

func (m *DashboardModule) Name() string { return "dashboard" }

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/dashboard/student", m.Handler.Student)
		auth.GET("/dashboard/admin", middleware.RequireRole(string(entity.RoleAdmin)), m.Handler.Admin)
		auth.GET("/appointments", m.Handler.ListAppointments)
		auth.POST("/appointments", m.Handler.CreateAppointment)
	}
}
