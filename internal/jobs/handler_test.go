package jobs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/jobs"
)

func newRouter() (*gin.Engine, *jobs.MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := jobs.NewMemoryRepo()
	h := jobs.NewHandler(&jobs.Service{Repo: repo})
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, repo
}

func postJob(t *testing.T, router *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJobsCreateAndGet(t *testing.T) {
	router, _ := newRouter()

	resp := postJob(t, router, map[string]any{
		"title":        "Développeur Go",
		"company":      "Sonatel",
		"location":     "Dakar",
		"sector":       "Informatique",
		"contractType": "CDI",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected id, got empty")
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+created.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
}

func TestJobsCreateValidation(t *testing.T) {
	router, _ := newRouter()

	cases := []map[string]any{
		{"company": "Sonatel"},
		{"title": "Comptable"},
		{"title": "Comptable", "company": "Sonatel", "contractType": "Permanent"},
	}
	for i, payload := range cases {
		resp := postJob(t, router, payload)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d", i, resp.Code)
		}
	}
}

func TestJobsListFilters(t *testing.T) {
	router, _ := newRouter()

	seed := []map[string]any{
		{"title": "Développeur Go", "company": "Sonatel", "location": "Dakar", "sector": "Informatique"},
		{"title": "Comptable", "company": "SenEau", "location": "Thiès", "sector": "Finance"},
		{"title": "Analyste financier", "company": "BICIS", "location": "Dakar", "sector": "Finance"},
	}
	for _, payload := range seed {
		if resp := postJob(t, router, payload); resp.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d", resp.Code)
		}
	}

	cases := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?sector=finance", 2},
		{"?location=Dakar", 2},
		{"?sector=Finance&location=Dakar", 1},
		{"?q=comptable", 1},
		{"?q=introuvable", 0},
		{"?limit=2", 2},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs"+tc.query, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%q: status %d", tc.query, resp.Code)
		}
		var out []json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%q: decode: %v", tc.query, err)
		}
		if len(out) != tc.want {
			t.Errorf("%q: got %d jobs, want %d", tc.query, len(out), tc.want)
		}
	}
}

func TestJobsUpdateAndDelete(t *testing.T) {
	router, _ := newRouter()

	resp := postJob(t, router, map[string]any{"title": "Comptable", "company": "SenEau"})
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	update, _ := json.Marshal(map[string]any{"title": "Chef comptable", "company": "SenEau"})
	reqPut := httptest.NewRequest(http.MethodPut, "/api/v1/jobs/"+created.ID, bytes.NewReader(update))
	reqPut.Header.Set("Content-Type", "application/json")
	respPut := httptest.NewRecorder()
	router.ServeHTTP(respPut, reqPut)
	if respPut.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", respPut.Code)
	}
	var updated struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(respPut.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.Title != "Chef comptable" {
		t.Errorf("title = %q", updated.Title)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/api/v1/jobs/"+created.ID, nil)
	respDel := httptest.NewRecorder()
	router.ServeHTTP(respDel, reqDel)
	if respDel.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", respDel.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+created.ID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", respGet.Code)
	}
}
