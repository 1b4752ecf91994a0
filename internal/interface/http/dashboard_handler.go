package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/application"
	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/response"
	"github.com/oksasatya/inclusive-studai/pkg/validation"
)

type DashboardHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.Service, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

type createAppointmentRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Date  string `json:"date" binding:"required,max=64"`
	Type  string `json:"type" binding:"required,apttype"`
}

func (h *DashboardHandler) Student(c *gin.Context) {
	data := h.Svc.GetStudentDashboardData(c.GetString(middleware.CtxUserIDKey))
	response.Success(c, http.StatusOK, data, "student dashboard", nil)
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	response.Success(c, http.StatusOK, h.Svc.GetAdminDashboardData(), "admin dashboard", nil)
}

func (h *DashboardHandler) ListAppointments(c *gin.Context) {
	items := h.Svc.GetAppointments(c.GetString(middleware.CtxUserIDKey))
	response.Success(c, http.StatusOK, items, "appointments", map[string]any{"count": len(items)})
}

func (h *DashboardHandler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a := h.Svc.AddAppointment(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.NewAppointment{
		Title: req.Title,
		Date:  req.Date,
		Type:  entity.AppointmentType(req.Type),
	})
	response.Success(c, http.StatusCreated, a, "appointment requested", nil)
}
