package router

import (
	"github.com/gin-gonic/gin"

	app "github.com/surajkarki66/MediLeaf-backend/internal/application"
	"github.com/surajkarki66/MediLeaf-backend/internal/container"
	pginfra "github.com/surajkarki66/MediLeaf-backend/internal/infrastructure/postgres"
	handlers "github.com/surajkarki66/MediLeaf-backend/internal/interface/http"
	"github.com/surajkarki66/MediLeaf-backend/internal/interface/middleware"
	"github.com/surajkarki66/MediLeaf-backend/internal/router/modules"
)

// InitModules constructs every repository, service and handler and registers
// the feature modules with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	profiles := pginfra.NewProfileRepository(pool)
	families := pginfra.NewPlantFamilyRepository(pool)
	genuses := pginfra.NewPlantGenusRepository(pool)
	species := pginfra.NewPlantSpeciesRepository(pool)
	plants := pginfra.NewPlantRepository(pool)
	images := pginfra.NewPlantImageRepository(pool)
	contacts := pginfra.NewContactRepository(pool)
	feedback := pginfra.NewFeedbackRepository(pool)

	accountSvc := app.NewAccountService(users, profiles, container.GetTokenMaker(), container.GetDispatcher(), cfg, logger)
	plantSvc := app.NewPlantService(families, genuses, species, plants, images, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESPlantsIndex, logger)
	profileSvc := app.NewProfileService(users, profiles, container.GetGCS(), cfg.GCSBucket, logger)
	contactSvc := app.NewContactService(contacts, logger)
	feedbackSvc := app.NewFeedbackService(feedback, logger)
	predictSvc := app.NewPredictService(cfg.PredictAPIURL, cfg.PredictTimeout, plantSvc, logger)

	accountHandler := handlers.NewAccountHandler(accountSvc, container.GetSessions(), container.GetCookies(), cfg.SessionTTL, logger)
	plantHandler := handlers.NewPlantHandler(plantSvc, logger)
	profileHandler := handlers.NewProfileHandler(profileSvc, logger)
	contactHandler := handlers.NewContactHandler(contactSvc, logger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackSvc, logger)
	predictHandler := handlers.NewPredictHandler(predictSvc, logger)

	staff := middleware.StaffChecker(func(c *gin.Context, userID int64) bool {
		u, err := users.GetByID(c.Request.Context(), userID)
		return err == nil && u.IsStaff
	})

	r.Add(modules.NewStatusModule())
	r.Add(modules.NewAccountModule(accountHandler))
	r.Add(modules.NewProfileModule(profileHandler))
	r.Add(modules.NewPlantModule(plantHandler, staff))
	r.Add(modules.NewContactModule(contactHandler, staff))
	r.Add(modules.NewFeedbackModule(feedbackHandler, staff))
	r.Add(modules.NewPredictModule(predictHandler))
}
