package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/inclusive-studai/internal/interface/http"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

type ReaderModule struct {
	Handler *handlers.ReaderHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewReaderModule(h *handlers.ReaderHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ReaderModule {
	return &ReaderModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *ReaderModule) Name() string { return "reader" }

func (m *ReaderModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/materials/search", m.Handler.SearchMaterials)
		auth.POST("/reader/speak", middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Speak)
	}
}
