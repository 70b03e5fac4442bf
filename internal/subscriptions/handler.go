package subscriptions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/payments"
	"businessconnect-backend/internal/shared/server/middleware"
	"businessconnect-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches subscription routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscriptions", h.subscribe)
	rg.GET("/subscriptions", h.list)
	rg.GET("/subscriptions/:id", h.get)
	rg.POST("/subscriptions/:id/pay", h.pay)
}

// RegisterWebhook attaches the gateway callback. It goes on a public
// group because the gateway does not carry user credentials; the
// request is authenticated by its signature instead.
func (h *Handler) RegisterWebhook(rg *gin.RouterGroup) {
	rg.POST("/payments/notify", h.notify)
}

type subscriptionResponse struct {
	ID         string     `json:"id"`
	Plan       string     `json:"plan"`
	Status     string     `json:"status"`
	AmountFCFA int64      `json:"amountFcfa"`
	StartsAt   *time.Time `json:"startsAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func toResponse(sub Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:         sub.ID,
		Plan:       sub.Plan,
		Status:     sub.Status,
		AmountFCFA: sub.AmountFCFA,
		StartsAt:   sub.StartsAt,
		ExpiresAt:  sub.ExpiresAt,
		CreatedAt:  sub.CreatedAt,
	}
}

func (h *Handler) subscribe(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	var req struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	sub, err := h.Svc.Subscribe(c.Request.Context(), userID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrAlreadyActive):
			respond.Error(c, http.StatusConflict, "already_active", "an active subscription already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create subscription", nil)
		}
		return
	}
	respond.Created(c, toResponse(sub))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	subs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list subscriptions", nil)
		return
	}
	resp := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toResponse(sub))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sub, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "subscription not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch subscription", nil)
		}
		return
	}
	respond.OK(c, toResponse(sub))
}

func (h *Handler) pay(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	sub, intent, err := h.Svc.InitiatePayment(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "subscription not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, payments.ErrGateway):
			respond.Error(c, http.StatusBadGateway, "gateway_error", "payment gateway unavailable", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to initiate payment", nil)
		}
		return
	}
	respond.OK(c, gin.H{
		"subscription": toResponse(sub),
		"redirectUrl":  intent.RedirectURL,
		"token":        intent.Token,
	})
}

func (h *Handler) notify(c *gin.Context) {
	var req struct {
		Ref       string `json:"ref_command"`
		Amount    string `json:"item_price"`
		Status    string `json:"type_event"`
		Signature string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	err := h.Svc.HandleNotification(c.Request.Context(), Notification{
		Ref:       req.Ref,
		Amount:    req.Amount,
		Status:    req.Status,
		Signature: req.Signature,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "unknown payment reference", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process notification", nil)
		}
		return
	}
	respond.OK(c, gin.H{"status": "processed"})
}
