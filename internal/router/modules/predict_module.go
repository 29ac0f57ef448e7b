package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	handlers "github.com/surajkarki66/MediLeaf-backend/internal/interface/http"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
)

type PredictModule struct {
	Handler *handlers.PredictHandler
}

func NewPredictModule(h *handlers.PredictHandler) *PredictModule {
	return &PredictModule{Handler: h}
}

func (m *PredictModule) Register(rg *gin.RouterGroup) {
	// the model server is the expensive resource behind this route
	limiter := middleware.RateLimit(container.GetRedis(), 15, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/predict", limiter, m.Handler.Predict)
}
