package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
)

type StatusModule struct{}

func NewStatusModule() *StatusModule { return &StatusModule{} }

func (m *StatusModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/status", rl, func(c *gin.Context) {
		response.Success[any](c, http.StatusOK, gin.H{"status": "ok"}, "MediLeaf API is up and running!", nil)
	})
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
