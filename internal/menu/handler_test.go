package menu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := NewHandler(service)
	r.GET("/api/v1/menus", h.GetAll)
	r.GET("/api/v1/menus/:menu_id", h.GetByID)
	r.POST("/api/v1/menus", h.Add)
	r.PATCH("/api/v1/menus/:menu_id", h.Update)
	r.DELETE("/api/v1/menus/:menu_id", h.Delete)

	return r
}

func TestGetAll_EmptyReturnsEmptyList(t *testing.T) {
	r := newTestRouter(NewService(NewMockRepository(), NewMockCache()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menus", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}
}

func TestGetByID_MissingMenuReturns404(t *testing.T) {
	r := newTestRouter(NewService(NewMockRepository(), NewMockCache()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menus/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["detail"] != "menu not found" {
		t.Fatalf("expected detail 'menu not found', got %q", body["detail"])
	}
}

func TestAdd_DuplicateTitleReturns409(t *testing.T) {
	repo := NewMockRepository()
	r := newTestRouter(NewService(repo, NewMockCache()))

	payload := `{"title": "menu1", "description": "string"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/menus", strings.NewReader(payload))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	repo.addErr = ErrTitleTaken

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/menus", strings.NewReader(payload))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["detail"] != "This title already exists" {
		t.Fatalf("unexpected detail %q", body["detail"])
	}
}

func TestDelete_ReturnsConfirmation(t *testing.T) {
	repo := NewMockRepository()
	r := newTestRouter(NewService(repo, NewMockCache()))

	id := uuid.New()
	repo.menus[id] = &Menu{ID: id, Title: "menu1"}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/menus/"+id.String(), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !body.Status || body.Message != "The menu has been deleted" {
		t.Fatalf("unexpected confirmation %+v", body)
	}

	if _, err := repo.GetByID(context.Background(), id); err != ErrNotFound {
		t.Fatalf("expected menu to be gone, got %v", err)
	}
}
