package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/application"
	"github.com/yegebere/gebeya-auth/internal/interface/middleware"
	"github.com/yegebere/gebeya-auth/pkg/response"
	"github.com/yegebere/gebeya-auth/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Language string `json:"language" binding:"omitempty,lang"`
	Region   string `json:"region" binding:"omitempty,max=100"`
	Zone     string `json:"zone" binding:"omitempty,max=100"`
	Woreda   string `json:"woreda" binding:"omitempty,max=100"`
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":            u.ID,
		"phone_number":  u.PhoneNumber.String(),
		"name":          u.Name,
		"language":      u.Language,
		"region":        u.Region,
		"zone":          u.Zone,
		"woreda":        u.Woreda,
		"is_verified":   u.IsVerified,
		"created_at":    u.CreatedAt,
		"last_login_at": u.LastLoginAt,
	}, "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:     req.Name,
		Language: req.Language,
		Region:   req.Region,
		Zone:     req.Zone,
		Woreda:   req.Woreda,
	})
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":           u.ID,
		"phone_number": u.PhoneNumber.String(),
		"name":         u.Name,
		"language":     u.Language,
		"region":       u.Region,
		"zone":         u.Zone,
		"woreda":       u.Woreda,
	}, "profile updated", nil)
}
