package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
	"github.com/dgallion1/docmap/internal/pipeline"
	"github.com/dgallion1/docmap/internal/render"
)

func testServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	loader, err := inspect.Load("../inspect/testdata/sample", log)
	if err != nil {
		t.Fatalf("load sample project: %v", err)
	}

	siteFile := filepath.Join(t.TempDir(), "docmap.yaml")
	site := "title: Widgets\npages:\n  - symbol: widgets.Widget\n  - symbol: widgets.New\n"
	if err := os.WriteFile(siteFile, []byte(site), 0o644); err != nil {
		t.Fatalf("write site file: %v", err)
	}

	cfg := config.Config{
		DocmapAPIKey: apiKey,
		SiteFile:     siteFile,
		MaxDepth:     -1,
		MaxQueueSize: 4,
	}
	builder := doctree.NewBuilder(loader, doctree.NewCache(100), log)
	conv := render.NewConverter()
	orch := pipeline.NewOrchestrator(cfg, conv, log)

	return NewServer(builder, loader, orch, conv, log, cfg)
}

func TestHealth(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestSymbolTree(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symbols/widgets.Widget", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var tree struct {
		Name    string `json:"name"`
		Kind    string `json:"kind"`
		Members []struct {
			Name string `json:"name"`
		} `json:"members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tree.Name != "Widget" || tree.Kind != "class" {
		t.Errorf("unexpected root: %+v", tree)
	}
	if len(tree.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(tree.Members))
	}
}

func TestSymbolTree_DepthZero(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symbols/widgets.Widget?depth=0", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var tree struct {
		Members []json.RawMessage `json:"members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tree.Members) != 0 {
		t.Errorf("expected no members at depth 0, got %d", len(tree.Members))
	}
}

func TestSymbolTree_NotFound(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symbols/widgets.Missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListSymbols(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symbols", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, sym := range resp.Symbols {
		if strings.HasSuffix(sym, "widgets.Widget") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected widgets.Widget in symbol list, got %v", resp.Symbols)
	}
}

func TestListPages(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Title string `json:"title"`
		Pages []struct {
			Symbol  string `json:"symbol"`
			URL     string `json:"url"`
			Summary string `json:"summary"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Widgets" {
		t.Errorf("expected site title, got %q", resp.Title)
	}
	if len(resp.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(resp.Pages))
	}
	if resp.Pages[0].URL != "/docs/widgets.Widget" {
		t.Errorf("unexpected page URL %q", resp.Pages[0].URL)
	}
	if !strings.Contains(resp.Pages[0].Summary, "drawable element") {
		t.Errorf("expected doc summary, got %q", resp.Pages[0].Summary)
	}
}

func TestDocsPage(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/widgets.Widget", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("expected HTML content type, got %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(body, "docmap-node") {
		t.Errorf("expected assembled page markup, got: %s", body)
	}
	if strings.Contains(body, render.Separator) {
		t.Error("expected separator stripped from final page")
	}
}

func TestDocsPage_BadHeadingLevel(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/widgets.Widget?heading_level=9", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer(t, "secret-key")

	// Health stays public.
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected health to be public, got %d", rec.Code)
	}

	// API requires the key.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symbols", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/symbols", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong key, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/symbols", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with correct key, got %d", rec.Code)
	}
}

func TestAuthMiddleware_OpenWithoutKey(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symbols", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected open API without a configured key, got %d", rec.Code)
	}
}

func TestSubmitBuild_RequiresOutputDir(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/builds", strings.NewReader(`{}`))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBuildStatus_Unknown(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/builds/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["symbols"] == 0 {
		t.Error("expected at least one symbol")
	}
}
