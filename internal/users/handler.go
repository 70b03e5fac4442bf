package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/shared/server/middleware"
	"businessconnect-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.updateMe)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID, ok := h.requireAccount(c)
	if !ok {
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toProfileResponse(user))
}

func (h *Handler) updateMe(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID, ok := h.requireAccount(c)
	if !ok {
		return
	}

	var req struct {
		FullName string `json:"fullName"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
		Headline string `json:"headline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, Profile{
		FullName: req.FullName,
		Phone:    req.Phone,
		Location: req.Location,
		Headline: req.Headline,
	})
	if err != nil {
		if err == ErrNotFound {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toProfileResponse(user))
}

// requireAccount rejects guests; profile routes need a real login.
func (h *Handler) requireAccount(c *gin.Context) (string, bool) {
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return "", false
		}
	}
	return middleware.UserIDFromContext(c), true
}

func toProfileResponse(user User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"fullName":   user.FullName,
		"pictureUrl": user.PictureURL,
		"phone":      user.Phone,
		"location":   user.Location,
		"headline":   user.Headline,
	}
}
