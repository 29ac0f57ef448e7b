package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/surajkarki66/MediLeaf-backend/internal/application"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
)

type PredictHandler struct {
	Svc    *app.PredictService
	Logger *logrus.Logger
}

func NewPredictHandler(svc *app.PredictService, logger *logrus.Logger) *PredictHandler {
	return &PredictHandler{Svc: svc, Logger: logger}
}

// Predict accepts a multipart leaf image and returns the classifier's
// candidate labels plus the matching catalog entry.
func (h *PredictHandler) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "image file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read image", nil)
		return
	}
	defer f.Close()

	res, err := h.Svc.Predict(c.Request.Context(), f, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, app.ErrClassifierUnavailable) {
			response.Error(c, http.StatusBadGateway, "classifier is unavailable, try again later", nil)
			return
		}
		h.Logger.WithError(err).Error("prediction failed")
		response.Error(c, http.StatusInternalServerError, "prediction failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "prediction", nil)
}
