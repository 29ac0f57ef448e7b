package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	handlers "github.com/surajkarki66/MediLeaf-backend/internal/interface/http"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
)

// PlantModule wires the taxonomy catalog. Reads are public; mutations
// require a staff account.
type PlantModule struct {
	Handler *handlers.PlantHandler
	Staff   middleware.StaffChecker
}

func NewPlantModule(h *handlers.PlantHandler, staff middleware.StaffChecker) *PlantModule {
	return &PlantModule{Handler: h, Staff: staff}
}

func (m *PlantModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	readLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	public := rg.Group("/", readLimiter)
	{
		public.GET("/plant/families", m.Handler.ListFamilies)
		public.GET("/plant/families/:slug", m.Handler.GetFamily)
		public.GET("/plant/genuses", m.Handler.ListGenuses)
		public.GET("/plant/genuses/:slug", m.Handler.GetGenus)
		public.GET("/plant/species", m.Handler.ListSpecies)
		public.GET("/plant/species/:slug", m.Handler.GetSpecies)
		public.GET("/plants", m.Handler.ListPlants)
		public.GET("/plants/:id", m.Handler.GetPlant)
		public.GET("/plants/search", m.Handler.Search)
	}

	staff := rg.Group("/")
	staff.Use(middleware.Auth(container.GetSessions()), middleware.RequireStaff(m.Staff))
	staff.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		staff.POST("/plant/families", m.Handler.CreateFamily)
		staff.PUT("/plant/families/:slug", m.Handler.UpdateFamily)
		staff.DELETE("/plant/families/:slug", m.Handler.DeleteFamily)
		staff.POST("/plant/genuses", m.Handler.CreateGenus)
		staff.PUT("/plant/genuses/:slug", m.Handler.UpdateGenus)
		staff.DELETE("/plant/genuses/:slug", m.Handler.DeleteGenus)
		staff.POST("/plant/species", m.Handler.CreateSpecies)
		staff.PUT("/plant/species/:slug", m.Handler.UpdateSpecies)
		staff.DELETE("/plant/species/:slug", m.Handler.DeleteSpecies)
		staff.POST("/plants", m.Handler.CreatePlant)
		staff.PUT("/plants/:id", m.Handler.UpdatePlant)
		staff.DELETE("/plants/:id", m.Handler.DeletePlant)
		staff.POST("/plants/:id/images", m.Handler.UploadPlantImage)
		staff.DELETE("/plants/images/:imageID", m.Handler.DeletePlantImage)
	}
}
