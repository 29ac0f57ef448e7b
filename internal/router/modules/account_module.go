package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	handlers "github.com/surajkarki66/MediLeaf-backend/internal/interface/http"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
)

// AccountModule wires the account lifecycle routes.
// Public: signup, login, verify, resend-verification, forgot/reset password.
// Protected: logout, me, password change.
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	mailLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	linkLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.GET("/verify/:uid/:token", linkLimiter, m.Handler.Verify)
	rg.POST("/resend-verification", mailLimiter, m.Handler.ResendVerification)
	rg.POST("/forgot-password", mailLimiter, m.Handler.ForgotPassword)
	rg.GET("/reset-password/:uid/:token", linkLimiter, m.Handler.CheckResetToken)
	rg.POST("/reset-password/:uid/:token", linkLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetSessions()))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/password-change", m.Handler.ChangePassword)
	}
}
