package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkhoa1412/code-challenge-sub003/internal/app"
	"github.com/mkhoa1412/code-challenge-sub003/internal/config"
	"github.com/mkhoa1412/code-challenge-sub003/internal/metrics"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository"
	"github.com/mkhoa1412/code-challenge-sub003/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	schema := `
	CREATE TABLE resources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// setupTestServer wires a real handler stack over an in-memory database.
// Auth and rate limiting are disabled so each test exercises one concern.
func setupTestServer(t *testing.T, cfg *config.Config) (http.Handler, *sql.DB) {
	t.Helper()

	db := setupTestDB(t)

	if cfg == nil {
		cfg = &config.Config{}
	}

	// Local registry avoids duplicate collector registration across tests
	// Un registre local évite les enregistrements de collecteurs dupliqués entre tests
	metricsCollector := metrics.NewMetrics(prometheus.NewRegistry())

	resourceRepo := repository.NewSQLiteResource(db)

	container := &app.Container{
		DB:              db,
		Config:          cfg,
		ResourceRepo:    resourceRepo,
		ResourceService: service.NewResourceService(resourceRepo),
		AuthService:     service.NewAuthService(cfg),
		Metrics:         metricsCollector,
	}

	handler := NewHandler(container)
	return NewMux(handler, cfg, container), db
}

type resourcePayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type apiResponse struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Pagination *paginationBody   `json:"pagination"`
	Error      string            `json:"error"`
	Fields     map[string]string `json:"fields"`
	Stack      string            `json:"stack"`
}

type paginationBody struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

func doRequest(t *testing.T, mux http.Handler, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to parse response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func createResource(t *testing.T, mux http.Handler, body map[string]any) resourcePayload {
	t.Helper()
	rec, resp := doRequest(t, mux, http.MethodPost, "/api/resources", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	var created resourcePayload
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("Failed to parse created resource: %v", err)
	}
	return created
}

func TestCreateResource(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	rec, resp := doRequest(t, mux, http.MethodPost, "/api/resources", map[string]any{
		"name":        "  Widget  ",
		"description": "A test widget",
		"category":    "tools",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", rec.Code, rec.Body.String())
	}
	if !resp.Success {
		t.Error("Expected success envelope")
	}

	var created resourcePayload
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("Failed to parse created resource: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected id to be set")
	}
	if created.Name != "Widget" {
		t.Errorf("Expected trimmed name 'Widget', got '%s'", created.Name)
	}
	if !created.IsActive {
		t.Error("Expected isActive to default to true")
	}
	if created.CreatedAt == "" || created.UpdatedAt == "" {
		t.Error("Expected timestamps in response")
	}
}

func TestCreateResource_ValidationErrors(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{"Missing name", map[string]any{"description": "d"}, "name"},
		{"Blank name", map[string]any{"name": "   ", "description": "d"}, "name"},
		{"Missing description", map[string]any{"name": "Widget"}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, mux, http.MethodPost, "/api/resources", tt.body)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("Expected status 422, got %d. Body: %s", rec.Code, rec.Body.String())
			}
			if resp.Success {
				t.Error("Expected success=false")
			}
			if resp.Error == "" {
				t.Fatal("Expected error message")
			}
			if _, ok := resp.Fields[tt.wantField]; !ok {
				t.Errorf("Expected field error for %q, got %v", tt.wantField, resp.Fields)
			}
		})
	}
}

func TestCreateResource_MalformedJSON(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/resources", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rec.Code)
	}
}

func TestGetResource(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	created := createResource(t, mux, map[string]any{"name": "Widget", "description": "d"})

	rec, resp := doRequest(t, mux, http.MethodGet, fmt.Sprintf("/api/resources/%d", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var got resourcePayload
	if err := json.Unmarshal(resp.Data, &got); err != nil {
		t.Fatalf("Failed to parse resource: %v", err)
	}
	if got.Name != "Widget" {
		t.Errorf("Expected name 'Widget', got '%s'", got.Name)
	}
}

func TestGetResource_NotFound(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	rec, resp := doRequest(t, mux, http.MethodGet, "/api/resources/99999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rec.Code)
	}
	if resp.Success {
		t.Error("Expected success=false")
	}
	if resp.Error != "resource not found" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}

func TestGetResource_InvalidID(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	for _, id := range []string{"abc", "-3", "0"} {
		rec, _ := doRequest(t, mux, http.MethodGet, "/api/resources/"+id, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("id %q: expected status 422, got %d", id, rec.Code)
		}
	}
}

func TestListResources_Pagination(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	for i := 0; i < 5; i++ {
		createResource(t, mux, map[string]any{
			"name":        fmt.Sprintf("Widget %d", i),
			"description": "d",
		})
	}

	rec, resp := doRequest(t, mux, http.MethodGet, "/api/resources?limit=2&offset=4", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	if resp.Pagination == nil {
		t.Fatal("Expected pagination metadata")
	}
	if resp.Pagination.Total != 5 {
		t.Errorf("Expected total 5, got %d", resp.Pagination.Total)
	}
	if resp.Pagination.HasNext {
		t.Error("Expected hasNext=false on the last page")
	}
	if !resp.Pagination.HasPrev {
		t.Error("Expected hasPrev=true past the first page")
	}

	var page []resourcePayload
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatalf("Failed to parse page: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("Expected 1 row on the last page, got %d", len(page))
	}
}

func TestListResources_Filters(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	createResource(t, mux, map[string]any{"name": "Alpha Widget", "description": "d", "category": "tools"})
	createResource(t, mux, map[string]any{"name": "Beta Gadget", "description": "d", "category": "gadgets"})
	createResource(t, mux, map[string]any{"name": "Gamma Widget", "description": "d", "category": "tools", "isActive": false})

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"By name", "?name=widget", 2},
		{"By category", "?category=gadgets", 1},
		{"By isActive", "?isActive=false", 1},
		{"Combined", "?name=widget&isActive=true", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := doRequest(t, mux, http.MethodGet, "/api/resources"+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rec.Code)
			}
			if resp.Pagination.Total != tt.want {
				t.Errorf("Expected total %d, got %d", tt.want, resp.Pagination.Total)
			}
		})
	}
}

func TestListResources_InvalidQuery(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	for _, query := range []string{"?limit=abc", "?limit=0", "?offset=-1", "?isActive=maybe"} {
		rec, _ := doRequest(t, mux, http.MethodGet, "/api/resources"+query, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("query %q: expected status 422, got %d", query, rec.Code)
		}
	}
}

func TestListCategories(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	createResource(t, mux, map[string]any{"name": "A", "description": "d", "category": "tools"})
	createResource(t, mux, map[string]any{"name": "B", "description": "d", "category": "gadgets"})
	createResource(t, mux, map[string]any{"name": "C", "description": "d"})

	rec, resp := doRequest(t, mux, http.MethodGet, "/api/resources/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var categories []string
	if err := json.Unmarshal(resp.Data, &categories); err != nil {
		t.Fatalf("Failed to parse categories: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("Expected 2 categories, got %v", categories)
	}
}

func TestUpdateResource(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	created := createResource(t, mux, map[string]any{"name": "Widget", "description": "d", "category": "tools"})

	rec, resp := doRequest(t, mux, http.MethodPut, fmt.Sprintf("/api/resources/%d", created.ID), map[string]any{
		"name":     "Renamed",
		"isActive": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", rec.Code, rec.Body.String())
	}

	var updated resourcePayload
	if err := json.Unmarshal(resp.Data, &updated); err != nil {
		t.Fatalf("Failed to parse resource: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Expected name 'Renamed', got '%s'", updated.Name)
	}
	if updated.IsActive {
		t.Error("Expected isActive=false")
	}
	// Untouched fields survive a partial update / Les champs non fournis survivent à une mise à jour partielle
	if updated.Description != "d" {
		t.Errorf("Expected description 'd', got '%s'", updated.Description)
	}
	if updated.Category != "tools" {
		t.Errorf("Expected category 'tools', got '%s'", updated.Category)
	}
}

func TestUpdateResource_EmptyPayload(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	created := createResource(t, mux, map[string]any{"name": "Widget", "description": "d"})

	rec, resp := doRequest(t, mux, http.MethodPut, fmt.Sprintf("/api/resources/%d", created.ID), map[string]any{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rec.Code)
	}
	if _, ok := resp.Fields["_"]; !ok {
		t.Errorf("Expected synthetic field error, got %v", resp.Fields)
	}
}

func TestUpdateResource_NotFound(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	rec, _ := doRequest(t, mux, http.MethodPut, "/api/resources/99999", map[string]any{"name": "X"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteResource(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	created := createResource(t, mux, map[string]any{"name": "Widget", "description": "d"})

	rec, resp := doRequest(t, mux, http.MethodDelete, fmt.Sprintf("/api/resources/%d", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if resp.Message == "" {
		t.Error("Expected confirmation message")
	}

	// A second delete is not a silent no-op / Un deuxième delete n'est pas un no-op silencieux
	rec, _ = doRequest(t, mux, http.MethodDelete, fmt.Sprintf("/api/resources/%d", created.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on second delete, got %d", rec.Code)
	}
}

func TestErrorResponse_NoStackForClientErrors(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	_, resp := doRequest(t, mux, http.MethodGet, "/api/resources/99999", nil)
	if resp.Error == "" {
		t.Fatal("Expected error message")
	}
	if resp.Stack != "" {
		t.Error("Expected no stack trace for a not-found error")
	}
}

func TestHealthEndpoints(t *testing.T) {
	mux, db := setupTestServer(t, nil)
	defer db.Close()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected /health 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/readiness", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected /readiness 200, got %d", rec.Code)
	}
}
