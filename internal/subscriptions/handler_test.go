package subscriptions_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/payments"
	"businessconnect-backend/internal/subscriptions"
)

type fakeGateway struct {
	requests []payments.Request
	fail     bool
	key      string
	secret   string
}

func (g *fakeGateway) RequestPayment(ctx context.Context, req payments.Request) (payments.Intent, error) {
	g.requests = append(g.requests, req)
	if g.fail {
		return payments.Intent{}, payments.ErrGateway
	}
	return payments.Intent{Token: "tok-1", RedirectURL: "https://pay.example/" + req.Ref}, nil
}

func (g *fakeGateway) VerifySignature(ref, amount, signature string) bool {
	sum := sha256.Sum256([]byte(g.key + g.secret + ref + amount))
	return hex.EncodeToString(sum[:]) == signature
}

func (g *fakeGateway) sign(ref, amount string) string {
	sum := sha256.Sum256([]byte(g.key + g.secret + ref + amount))
	return hex.EncodeToString(sum[:])
}

func newRouter(userID string, gw payments.Gateway) (*gin.Engine, *subscriptions.Service) {
	gin.SetMode(gin.TestMode)
	svc := &subscriptions.Service{
		Repo:            subscriptions.NewMemoryRepo(),
		Gateway:         gw,
		CallbackBaseURL: "https://api.example/api/v1",
	}
	h := subscriptions.NewHandler(svc)
	r := gin.New()
	authed := r.Group("/api/v1")
	authed.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	h.RegisterRoutes(authed)
	h.RegisterWebhook(r.Group("/api/v1"))
	return r, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSubscribeAndList(t *testing.T) {
	router, _ := newRouter("user-1", &fakeGateway{key: "k", secret: "s"})

	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "premium"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("subscribe: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		AmountFCFA int64  `json:"amountFcfa"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Status != subscriptions.StatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.AmountFCFA != 5000 {
		t.Errorf("amount = %d, want 5000", created.AmountFCFA)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/subscriptions", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.Code)
	}
	var listed []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("list = %+v, want single %s", listed, created.ID)
	}
}

func TestSubscribeUnknownPlan(t *testing.T) {
	router, _ := newRouter("user-1", &fakeGateway{})
	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "gratuit"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPayReturnsRedirect(t *testing.T) {
	gw := &fakeGateway{key: "k", secret: "s"}
	router, _ := newRouter("user-1", gw)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "premium"})
	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/subscriptions/"+created.ID+"/pay", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("pay: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payResp struct {
		RedirectURL string `json:"redirectUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payResp.RedirectURL != "https://pay.example/sub-"+created.ID {
		t.Errorf("redirect = %q", payResp.RedirectURL)
	}
	if len(gw.requests) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(gw.requests))
	}
	if gw.requests[0].AmountFCFA != 5000 {
		t.Errorf("gateway amount = %d", gw.requests[0].AmountFCFA)
	}
}

func TestPayGatewayDown(t *testing.T) {
	router, _ := newRouter("user-1", &fakeGateway{fail: true})

	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "premium"})
	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/subscriptions/"+created.ID+"/pay", nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestNotifyActivatesSubscription(t *testing.T) {
	gw := &fakeGateway{key: "k", secret: "s"}
	router, svc := newRouter("user-1", gw)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "premium"})
	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	doJSON(t, router, http.MethodPost, "/api/v1/subscriptions/"+created.ID+"/pay", nil)

	ref := "sub-" + created.ID
	amount := strconv.FormatInt(5000, 10)
	resp = doJSON(t, router, http.MethodPost, "/api/v1/payments/notify", gin.H{
		"ref_command": ref,
		"item_price":  amount,
		"type_event":  "sale_complete",
		"signature":   gw.sign(ref, amount),
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("notify: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	sub, err := svc.Get(context.Background(), "user-1", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub.Status != subscriptions.StatusActive {
		t.Errorf("status = %q, want active", sub.Status)
	}
	if sub.ExpiresAt == nil || sub.StartsAt == nil {
		t.Error("activation dates not set")
	}
}

func TestNotifyRejectsBadSignature(t *testing.T) {
	gw := &fakeGateway{key: "k", secret: "s"}
	router, _ := newRouter("user-1", gw)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "premium"})
	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	doJSON(t, router, http.MethodPost, "/api/v1/subscriptions/"+created.ID+"/pay", nil)

	resp = doJSON(t, router, http.MethodPost, "/api/v1/payments/notify", gin.H{
		"ref_command": "sub-" + created.ID,
		"item_price":  "5000",
		"type_event":  "sale_complete",
		"signature":   "forged",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSecondActiveSubscriptionRejected(t *testing.T) {
	gw := &fakeGateway{key: "k", secret: "s"}
	router, _ := newRouter("user-1", gw)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "premium"})
	var created struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&created)
	doJSON(t, router, http.MethodPost, "/api/v1/subscriptions/"+created.ID+"/pay", nil)

	ref := "sub-" + created.ID
	doJSON(t, router, http.MethodPost, "/api/v1/payments/notify", gin.H{
		"ref_command": ref,
		"item_price":  "5000",
		"type_event":  "sale_complete",
		"signature":   gw.sign(ref, "5000"),
	})

	resp = doJSON(t, router, http.MethodPost, "/api/v1/subscriptions", gin.H{"plan": "entreprise"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}
