package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/inclusive-studai/internal/interface/http"
	"github.com/oksasatya/inclusive-studai/internal/interface/middleware"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

type AuthModule struct {
	Handler     *handlers.AuthHandler
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	LoginPerMin int
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client, loginPerMin int) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb, LoginPerMin: loginPerMin}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, m.LoginPerMin, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
	}
}
