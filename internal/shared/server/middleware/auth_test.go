package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/shared/auth"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth("dev"))
	r.GET("/api/v1/cvs", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":  UserIDFromContext(c),
			"isGuest": c.MustGet("isGuest"),
		})
	})
	r.POST("/api/v1/payments/notify", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cvs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsGuestHeader(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	req.Header.Set("X-Guest-Id", "abc-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !containsAll(body, `"userId":"guest:abc-123"`, `"isGuest":true`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthAcceptsSignedToken(t *testing.T) {
	router := newAuthRouter()

	token, err := auth.SignJWT(auth.Claims{Sub: "google:42", Email: "awa@example.sn"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !containsAll(resp.Body.String(), `"userId":"google:42"`, `"isGuest":false`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthSkipsPaymentWebhook(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/notify", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 without identity, got %d", resp.Code)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
