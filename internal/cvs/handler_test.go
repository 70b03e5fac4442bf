package cvs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/cvs"
)

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := cvs.NewHandler(&cvs.Service{Repo: cvs.NewMemoryRepo()})
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func validPayload() []byte {
	raw, _ := json.Marshal(map[string]any{
		"template": "window",
		"personalInfo": map[string]any{
			"firstName": "Awa",
			"lastName":  "Diop",
			"email":     "awa@example.com",
			"phone":     "771234567",
		},
		"experience": []map[string]any{
			{"title": "Comptable", "company": "Sonatel", "current": true},
		},
		"skills": []any{"SAGE", map[string]any{"name": "Excel", "level": 5}},
	})
	return raw
}

func createCV(t *testing.T, router *gin.Engine, payload []byte) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return created.ID
}

func TestCVsCreateNormalizesPayload(t *testing.T) {
	router := newRouter("user-1")
	id := createCV(t, router, validPayload())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/"+id, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.Code)
	}

	var out struct {
		Title string `json:"title"`
		Data  struct {
			Skills []struct {
				Name  string `json:"name"`
				Level int    `json:"level"`
			} `json:"skills"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Title != "CV Awa Diop" {
		t.Errorf("title = %q", out.Title)
	}
	if len(out.Data.Skills) != 2 {
		t.Fatalf("skills = %d, want 2", len(out.Data.Skills))
	}
	// Bare-string skills pick up the default level.
	if out.Data.Skills[0].Name != "SAGE" || out.Data.Skills[0].Level != 3 {
		t.Errorf("skill[0] = %+v", out.Data.Skills[0])
	}
}

func TestCVsCreateRejectsBadShape(t *testing.T) {
	router := newRouter("user-1")

	bad := [][]byte{
		[]byte(`{"experience": "beaucoup"}`),
		[]byte(`{"personalInfo": "Awa Diop"}`),
		[]byte(`not json`),
	}
	for i, payload := range bad {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, resp.Code)
		}
	}
}

func TestCVsOwnership(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := cvs.NewHandler(&cvs.Service{Repo: cvs.NewMemoryRepo()})

	routerFor := func(userID string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("userId", userID)
			c.Next()
		})
		h.RegisterRoutes(r.Group("/api/v1"))
		return r
	}

	id := createCV(t, routerFor("user-1"), validPayload())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/"+id, nil)
	resp := httptest.NewRecorder()
	routerFor("user-2").ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("cross-user get: expected 404, got %d", resp.Code)
	}
}

func TestCVsUpdateAndDelete(t *testing.T) {
	router := newRouter("user-1")
	id := createCV(t, router, validPayload())

	updated, _ := json.Marshal(map[string]any{
		"personalInfo": map[string]any{"prenom": "Moussa", "nom": "Ndiaye"},
	})
	reqPut := httptest.NewRequest(http.MethodPut, "/api/v1/cvs/"+id, bytes.NewReader(updated))
	reqPut.Header.Set("Content-Type", "application/json")
	respPut := httptest.NewRecorder()
	router.ServeHTTP(respPut, reqPut)
	if respPut.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", respPut.Code, respPut.Body.String())
	}
	var out struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(respPut.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Title != "CV Moussa Ndiaye" {
		t.Errorf("title after legacy-spelling update = %q", out.Title)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/cvs/"+id, nil)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", respDel.Code)
	}
}
