package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/docmap/internal/render"
)

func testWorker(t *testing.T) *Worker {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(render.NewConverter(), log, 100, -1, 2)
}

func writeSiteFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "docmap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write site file: %v", err)
	}
	return path
}

func TestWorker_Process(t *testing.T) {
	dir := t.TempDir()
	siteFile := writeSiteFile(t, dir, `title: Widgets
pages:
  - symbol: widgets.Widget
  - symbol: widgets.New
    headless: true
`)
	outDir := filepath.Join(dir, "site")

	job := NewJob("../inspect/testdata/sample", siteFile, outDir)
	testWorker(t).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.PagesRendered != 2 {
		t.Errorf("expected 2 pages rendered, got %d", snap.Progress.PagesRendered)
	}

	page, err := os.ReadFile(filepath.Join(outDir, "widgets.Widget.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if !strings.Contains(string(page), "docmap-node") {
		t.Error("expected assembled page markup")
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), `href="widgets.Widget.html"`) {
		t.Errorf("expected index link, got:\n%s", index)
	}
	if !strings.Contains(string(index), "<title>Widgets</title>") {
		t.Error("expected site title in index")
	}
}

func TestWorker_PartialOnUnknownSymbol(t *testing.T) {
	dir := t.TempDir()
	siteFile := writeSiteFile(t, dir, `pages:
  - symbol: widgets.Widget
  - symbol: widgets.Missing
`)
	outDir := filepath.Join(dir, "site")

	job := NewJob("../inspect/testdata/sample", siteFile, outDir)
	testWorker(t).Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", snap.Status)
	}
	if snap.Progress.PagesRendered != 1 {
		t.Errorf("expected 1 page rendered, got %d", snap.Progress.PagesRendered)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", snap.Progress.Errors)
	}
}

func TestWorker_FailsOnMissingSiteFile(t *testing.T) {
	job := NewJob(".", filepath.Join(t.TempDir(), "absent.yaml"), t.TempDir())
	testWorker(t).Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Fatalf("expected failed, got %s", job.Snapshot().Status)
	}
}
