package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	handlers "github.com/surajkarki66/MediLeaf-backend/internal/interface/http"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
)

type FeedbackModule struct {
	Handler *handlers.FeedbackHandler
	Staff   middleware.StaffChecker
}

func NewFeedbackModule(h *handlers.FeedbackHandler, staff middleware.StaffChecker) *FeedbackModule {
	return &FeedbackModule{Handler: h, Staff: staff}
}

func (m *FeedbackModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// anonymous feedback is allowed; the session just enriches it
	rg.POST("/feedback",
		middleware.OptionalAuth(container.GetSessions()),
		middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByIPAndPath(), nil),
		m.Handler.Submit,
	)

	staff := rg.Group("/")
	staff.Use(middleware.Auth(container.GetSessions()), middleware.RequireStaff(m.Staff))
	{
		staff.GET("/feedback", m.Handler.List)
	}
}
