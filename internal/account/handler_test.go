package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"businessconnect-backend/internal/cvs"
	"businessconnect-backend/internal/exports"
)

func newClaimRouter(cvsRepo cvs.CVsRepo, exportsRepo exports.ExportsRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(cvsRepo, exportsRepo))
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("isGuest", false)
		c.Next()
	})
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestClaimGuestMigratesData(t *testing.T) {
	cvsRepo := cvs.NewMemoryRepo()
	exportsRepo := exports.NewMemoryRepo()
	router := newClaimRouter(cvsRepo, exportsRepo)

	guestID := "11111111-1111-1111-1111-111111111111"
	guestUserID := "guest:" + guestID

	if err := cvsRepo.Create(context.Background(), cvs.Record{
		ID:        "cv-1",
		UserID:    guestUserID,
		Title:     "CV Awa Diop",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create cv: %v", err)
	}
	if err := exportsRepo.Create(context.Background(), exports.Export{
		ID:        "export-1",
		UserID:    guestUserID,
		CVID:      "cv-1",
		Format:    exports.FormatPDF,
		Status:    exports.StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create export: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	records, err := cvsRepo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("list cvs: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 migrated cv, got %d", len(records))
	}

	exportsList, err := exportsRepo.ListByUser(context.Background(), "user-1", 10, 0)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(exportsList) != 1 {
		t.Fatalf("expected 1 migrated export, got %d", len(exportsList))
	}
}

func TestClaimGuestIdempotentAndIsolated(t *testing.T) {
	cvsRepo := cvs.NewMemoryRepo()
	exportsRepo := exports.NewMemoryRepo()
	router := newClaimRouter(cvsRepo, exportsRepo)

	guestID := "22222222-2222-2222-2222-222222222222"
	guestUserID := "guest:" + guestID

	if err := cvsRepo.Create(context.Background(), cvs.Record{
		ID:        "cv-2",
		UserID:    guestUserID,
		Title:     "CV sans titre",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("create cv: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/account/claim-guest", nil)
	req2.Header.Set("X-Guest-Id", guestID)
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected status 200 on idempotent call, got %d", resp2.Code)
	}

	records, err := cvsRepo.ListByUser(context.Background(), "user-2", 10, 0)
	if err != nil {
		t.Fatalf("list cvs: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no cvs for other user, got %d", len(records))
	}
}
