package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/application"
	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/internal/interface/presentation"
	"github.com/oksasatya/inclusive-studai/pkg/response"
	"github.com/oksasatya/inclusive-studai/pkg/validation"
)

type PreferencesHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewPreferencesHandler(svc *application.Service, logger *logrus.Logger) *PreferencesHandler {
	return &PreferencesHandler{Svc: svc, Logger: logger}
}

type updatePreferencesRequest struct {
	HighContrast *bool    `json:"highContrast"`
	FontSize     *string  `json:"fontSize" binding:"omitempty,fontsize"`
	VoiceSpeed   *float64 `json:"voiceSpeed" binding:"omitempty,voicespeed"`
}

type toggleContrastRequest struct {
	// Current is the state the client is showing; the stored one is used when absent.
	Current *bool `json:"current"`
}

type updateConsentsRequest struct {
	DataCollection *bool `json:"dataCollection"`
	VoiceRecording *bool `json:"voiceRecording"`
}

type preferencesView struct {
	User    entity.User          `json:"user"`
	Display presentation.Display `json:"display"`
}

func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := entity.PreferencesPatch{HighContrast: req.HighContrast, VoiceSpeed: req.VoiceSpeed}
	if req.FontSize != nil {
		fs := entity.FontSize(*req.FontSize)
		patch.FontSize = &fs
	}
	u, err := h.Svc.UpdatePreferences(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), patch)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, preferencesView{User: u, Display: presentation.For(u.Preferences)}, "preferences updated", nil)
}

func (h *PreferencesHandler) ToggleContrast(c *gin.Context) {
	var req toggleContrastRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			return
		}
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	current := false
	if req.Current != nil {
		current = *req.Current
	} else {
		u, err := h.Svc.GetProfile(uid)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		current = u.Preferences.HighContrast
	}
	u, err := h.Svc.ToggleHighContrast(c.Request.Context(), uid, current)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, preferencesView{User: u, Display: presentation.For(u.Preferences)}, "contrast toggled", nil)
}

func (h *PreferencesHandler) UpdateConsents(c *gin.Context) {
	var req updateConsentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateConsents(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), entity.ConsentsPatch{
		DataCollection: req.DataCollection,
		VoiceRecording: req.VoiceRecording,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u.Consents, "consents updated", nil)
}
