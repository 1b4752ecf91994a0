package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/application"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/response"
	"github.com/oksasatya/inclusive-studai/pkg/validation"
)

// ReaderHandler serves the accessible reader: material search and read aloud.
type ReaderHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewReaderHandler(svc *application.Service, logger *logrus.Logger) *ReaderHandler {
	return &ReaderHandler{Svc: svc, Logger: logger}
}

type searchQuery struct {
	Q    string `form:"q" binding:"required,max=200"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

type speakRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

func (h *ReaderHandler) SearchMaterials(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.SearchMaterials(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "materials", map[string]any{"count": len(hits)})
}

func (h *ReaderHandler) Speak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	utt, err := h.Svc.ReadAloud(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.Text)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, utt, "spoken", nil)
}
