package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/surajkarki66/MediLeaf-backend/internal/application"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
	"github.com/surajkarki66/MediLeaf-backend/pkg/validation"
)

type ContactHandler struct {
	Svc    *app.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *app.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Subject  string `json:"subject" binding:"required,max=250"`
	Message  string `json:"message" binding:"required,max=5000"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	msg, err := h.Svc.Submit(c.Request.Context(), app.ContactInput{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		h.Logger.WithError(err).Error("contact submit failed")
		response.Error(c, http.StatusInternalServerError, "could not submit message", nil)
		return
	}
	response.Success(c, http.StatusCreated, msg, "message received, we will get back to you soon", nil)
}

func (h *ContactHandler) List(c *gin.Context) {
	p := listParams(c)
	items, total, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		h.Logger.WithError(err).Error("contact list failed")
		response.Error(c, http.StatusInternalServerError, "could not list messages", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "contact messages", listMeta(total, p.Limit, p.Offset))
}

type FeedbackHandler struct {
	Svc    *app.FeedbackService
	Logger *logrus.Logger
}

func NewFeedbackHandler(svc *app.FeedbackService, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{Svc: svc, Logger: logger}
}

type feedbackRequest struct {
	ImageURL       string `json:"image_url" binding:"required,url"`
	PredictedLabel string `json:"predicted_label" binding:"required,max=200"`
	IsCorrect      *bool  `json:"is_correct" binding:"required"`
	ActualLabel    string `json:"actual_label" binding:"omitempty,max=200"`
	Comment        string `json:"comment" binding:"omitempty,max=2000"`
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := app.FeedbackInput{
		ImageURL:       req.ImageURL,
		PredictedLabel: req.PredictedLabel,
		IsCorrect:      *req.IsCorrect,
		ActualLabel:    req.ActualLabel,
		Comment:        req.Comment,
	}
	// attach the account when the caller is logged in
	if uid := c.GetInt64("userID"); uid != 0 {
		in.UserID = &uid
	}
	fb, err := h.Svc.Submit(c.Request.Context(), in)
	if err != nil {
		h.Logger.WithError(err).Error("feedback submit failed")
		response.Error(c, http.StatusInternalServerError, "could not submit feedback", nil)
		return
	}
	response.Success(c, http.StatusCreated, fb, "feedback recorded", nil)
}

func (h *FeedbackHandler) List(c *gin.Context) {
	p := listParams(c)
	items, total, err := h.Svc.List(c.Request.Context(), p)
	if err != nil {
		h.Logger.WithError(err).Error("feedback list failed")
		response.Error(c, http.StatusInternalServerError, "could not list feedback", nil)
		return
	}
	response.Success(c, http.StatusOK, items, "feedback", listMeta(total, p.Limit, p.Offset))
}
