package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/application"
	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/internal/interface/presentation"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
	"github.com/oksasatya/inclusive-studai/pkg/response"
	"github.com/oksasatya/inclusive-studai/pkg/validation"
)

type AuthHandler struct {
	Svc      *application.Service
	Logger   *logrus.Logger
	Cookies  *helpers.Manager
	Contrast *presentation.ContrastListener
}

func NewAuthHandler(svc *application.Service, contrast *presentation.ContrastListener, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Contrast: contrast, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"max=256"`
}

type sessionView struct {
	User    entity.User          `json:"user"`
	Token   string               `json:"token,omitempty"`
	Display presentation.Display `json:"display"`
	// AppliedRootClass is what the contrast listener last applied; absent
	// until the user changes a preference in this process.
	AppliedRootClass *string `json:"appliedRootClass,omitempty"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, res.AccessToken, res.AccessTokenExpiry)
	response.Success(c, http.StatusOK, sessionView{
		User:    res.User,
		Token:   res.AccessToken,
		Display: presentation.For(res.User.Preferences),
	}, "login successful", map[string]any{"access_expires_at": res.AccessTokenExpiry})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	view := sessionView{User: u, Display: presentation.For(u.Preferences)}
	if h.Contrast != nil {
		if classes, seen := h.Contrast.Applied(u.ID); seen {
			view.AppliedRootClass = &classes
		}
	}
	response.Success(c, http.StatusOK, view, "profile", nil)
}
