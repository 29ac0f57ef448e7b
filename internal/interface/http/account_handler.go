package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/surajkarki66/MediLeaf-backend/internal/application"
	"github.com/surajkarki66/MediLeaf-backend/internal/domain/entity"
	"github.com/surajkarki66/MediLeaf-backend/pkg/helpers"
	"github.com/surajkarki66/MediLeaf-backend/pkg/response"
	"github.com/surajkarki66/MediLeaf-backend/pkg/session"
	"github.com/surajkarki66/MediLeaf-backend/pkg/validation"
)

type AccountHandler struct {
	Svc        *app.AccountService
	Sessions   *session.Store
	Cookies    *helpers.CookieManager
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

func NewAccountHandler(svc *app.AccountService, sessions *session.Store, cookies *helpers.CookieManager, sessionTTL time.Duration, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Sessions: sessions, Cookies: cookies, SessionTTL: sessionTTL, Logger: logger}
}

type signupRequest struct {
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Contact         string `json:"contact" binding:"omitempty,contact"`
	Country         string `json:"country" binding:"omitempty,max=60"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type changePasswordRequest struct {
	CurrentPassword    string `json:"current_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,pwd"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required,eqfield=NewPassword"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

func userPayload(u *entity.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"first_name":  u.FirstName,
		"last_name":   u.LastName,
		"email":       u.Email,
		"contact":     u.Contact,
		"country":     u.Country,
		"is_verified": u.IsVerified,
		"created_at":  u.CreatedAt,
		"updated_at":  u.UpdatedAt,
	}
}

func (h *AccountHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Signup(c.Request.Context(), app.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Contact:   req.Contact,
		Country:   req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmailTaken):
			response.Error(c, http.StatusConflict, err.Error(), nil)
		case helpers.IsWeakPassword(err):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("signup failed")
			response.Error(c, http.StatusInternalServerError, "could not create account", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, userPayload(u), "account created, check your email to verify it", nil)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error(c, http.StatusInternalServerError, "could not log in", nil)
		return
	}

	sid, err := h.Sessions.Create(c.Request.Context(), session.Session{
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName(),
		CreatedAt: time.Now(),
	})
	if err != nil {
		h.Logger.WithError(err).Error("session create failed")
		response.Error(c, http.StatusInternalServerError, "could not log in", nil)
		return
	}
	h.Cookies.SetSession(c, sid, h.SessionTTL)
	response.Success(c, http.StatusOK, userPayload(u), "login successful", nil)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(helpers.SessionCookie); err == nil && sid != "" {
		if err := h.Sessions.Delete(c.Request.Context(), sid); err != nil {
			h.Logger.WithError(err).Warn("session delete failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AccountHandler) Verify(c *gin.Context) {
	already, err := h.Svc.Verify(c.Request.Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrLinkExpired):
			response.Error(c, http.StatusGone, err.Error(), nil)
		case errors.Is(err, app.ErrInvalidLink):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("verify failed")
			response.Error(c, http.StatusInternalServerError, "could not verify account", nil)
		}
		return
	}
	msg := "account verified successfully"
	if already {
		msg = "account is already verified"
	}
	response.Success[any](c, http.StatusOK, gin.H{"verified": true}, msg, nil)
}

func (h *AccountHandler) ResendVerification(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "no account with this email exists", nil)
		case errors.Is(err, app.ErrAlreadyVerified):
			response.Error(c, http.StatusConflict, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("resend verification failed")
			response.Error(c, http.StatusInternalServerError, "could not resend verification email", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "verification email sent", nil)
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.ChangePassword(c.Request.Context(), c.GetInt64("userID"), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNotVerified):
			response.Error(c, http.StatusBadRequest, "please verify your account first", nil)
		case errors.Is(err, app.ErrWrongPassword), errors.Is(err, app.ErrSamePassword):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		case helpers.IsWeakPassword(err):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("change password failed")
			response.Error(c, http.StatusInternalServerError, "could not change password", nil)
		}
		return
	}
	// old session dies with the old password; hand back a fresh id
	sid, err := h.Sessions.Rotate(c.Request.Context(), c.GetString("sessionID"), session.Session{
		UserID:   c.GetInt64("userID"),
		Email:    c.GetString("userEmail"),
		FullName: c.GetString("userName"),
	})
	if err != nil {
		h.Logger.WithError(err).Error("session rotate failed after password change")
		response.Error(c, http.StatusInternalServerError, "could not refresh session", nil)
		return
	}
	h.Cookies.SetSession(c, sid, h.SessionTTL)
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed successfully", nil)
}

func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusBadRequest, "no account with this email exists", nil)
		case errors.Is(err, app.ErrNotVerified):
			response.Error(c, http.StatusBadRequest, "account must be verified before resetting the password", nil)
		default:
			h.Logger.WithError(err).Error("forgot password failed")
			response.Error(c, http.StatusInternalServerError, "could not send reset email", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "password reset instructions sent", nil)
}

func (h *AccountHandler) CheckResetToken(c *gin.Context) {
	u, err := h.Svc.CheckResetToken(c.Request.Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		h.resetError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"valid": true, "email": entity.MaskEmail(u.Email)}, "token is valid", nil)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.ResetPassword(c.Request.Context(), c.Param("uid"), c.Param("token"), req.Password)
	if err != nil {
		if helpers.IsWeakPassword(err) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		h.resetError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password has been reset", nil)
}

// resetError keeps the distinct reset failure kinds visible to the caller.
func (h *AccountHandler) resetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidLink):
		response.Error(c, http.StatusBadRequest, "malformed reset link", nil)
	case errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "no account for this reset link", nil)
	case errors.Is(err, app.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "reset token is invalid or expired", nil)
	default:
		h.Logger.WithError(err).Error("password reset failed")
		response.Error(c, http.StatusInternalServerError, "could not reset password", nil)
	}
}

func (h *AccountHandler) Me(c *gin.Context) {
	u, p, err := h.Svc.Me(c.Request.Context(), c.GetInt64("userID"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	payload := userPayload(u)
	if p != nil {
		payload["profile"] = gin.H{
			"slug":       p.Slug,
			"avatar_url": p.AvatarURL,
			"facebook":   p.Facebook,
			"instagram":  p.Instagram,
			"linkedin":   p.LinkedIn,
			"twitter":    p.Twitter,
		}
	}
	response.Success(c, http.StatusOK, payload, "current user", nil)
}
