package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	handlers "github.com/surajkarki66/MediLeaf-backend/internal/interface/http"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	Staff   middleware.StaffChecker
}

func NewContactModule(h *handlers.ContactHandler, staff middleware.StaffChecker) *ContactModule {
	return &ContactModule{Handler: h, Staff: staff}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// tight limit; this endpoint is a spam magnet
	rg.POST("/contact", middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil), m.Handler.Submit)

	staff := rg.Group("/")
	staff.Use(middleware.Auth(container.GetSessions()), middleware.RequireStaff(m.Staff))
	{
		staff.GET("/contacts", m.Handler.List)
	}
}
