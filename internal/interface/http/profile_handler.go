package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/surajkarki66/MediLeaf-backend/internal/application"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
	"github.com/surajkarki66/MediLeaf-backend/pkg/validation"
)

type ProfileHandler struct {
	Svc    *app.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *app.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

const maxAvatarSize = 500 << 10 // 500 KB

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Contact   string `json:"contact" binding:"omitempty,contact"`
	Country   string `json:"country" binding:"omitempty,max=60"`
	Facebook  string `json:"facebook" binding:"omitempty,url"`
	Instagram string `json:"instagram" binding:"omitempty,url"`
	LinkedIn  string `json:"linkedin" binding:"omitempty,url"`
	Twitter   string `json:"twitter" binding:"omitempty,url"`
}

func profilePayload(u *entity.User, p *entity.Profile) gin.H {
	return gin.H{
		"slug":       p.Slug,
		"full_name":  u.FullName(),
		"country":    u.Country,
		"avatar_url": p.AvatarURL,
		"facebook":   p.Facebook,
		"instagram":  p.Instagram,
		"linkedin":   p.LinkedIn,
		"twitter":    p.Twitter,
	}
}

// GetBySlug is the public profile page lookup.
func (h *ProfileHandler) GetBySlug(c *gin.Context) {
	u, p, err := h.Svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, app.ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "profile not found", nil)
			return
		}
		h.Logger.WithError(err).Error("profile lookup failed")
		response.Error(c, http.StatusInternalServerError, "could not load profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profilePayload(u, p), "profile", nil)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, p, err := h.Svc.Update(c.Request.Context(), c.GetInt64("userID"), app.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Contact:   req.Contact,
		Country:   req.Country,
		Facebook:  req.Facebook,
		Instagram: req.Instagram,
		LinkedIn:  req.LinkedIn,
		Twitter:   req.Twitter,
	})
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) || errors.Is(err, app.ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("profile update failed")
		response.Error(c, http.StatusInternalServerError, "could not update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, profilePayload(u, p), "profile updated", nil)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.Error(c, http.StatusBadRequest, "avatar must be 500KB or smaller", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read avatar", nil)
		return
	}
	defer f.Close()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), c.GetInt64("userID"), f, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, app.ErrProfileNotFound) {
			response.Error(c, http.StatusNotFound, "profile not found", nil)
			return
		}
		h.Logger.WithError(err).Error("avatar upload failed")
		response.Error(c, http.StatusInternalServerError, "could not upload avatar", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}
