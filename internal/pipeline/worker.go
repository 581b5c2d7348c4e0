package pipeline

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/inspect"
	"github.com/dgallion1/docmap/internal/render"
)

// Worker processes a single site build job.
type Worker struct {
	conv render.Converter
	log  *slog.Logger

	cacheSize    int
	defaultDepth int

	maxConcurrentPages int
}

func NewWorker(conv render.Converter, log *slog.Logger, cacheSize, defaultDepth, maxPages int) *Worker {
	return &Worker{
		conv:               conv,
		log:                log,
		cacheSize:          cacheSize,
		defaultDepth:       defaultDepth,
		maxConcurrentPages: maxPages,
	}
}

// Process runs the full site build for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "site_file", job.SiteFile)

	// Phase 1: Load site config and project symbols.
	job.SetStatus(StatusLoading, "site")
	site, err := config.LoadSite(job.SiteFile)
	if err != nil {
		log.Error("site load failed", "error", err)
		job.AddError(fmt.Sprintf("site: %s", err))
		job.SetStatus(StatusFailed, "site")
		return
	}

	dir := job.ProjectDir
	if dir == "" {
		dir = site.Project
	}
	if dir == "" {
		dir = "."
	}

	job.SetStatus(StatusLoading, "project")
	loader, err := inspect.Load(dir, log)
	if err != nil {
		log.Error("project load failed", "dir", dir, "error", err)
		job.AddError(fmt.Sprintf("load %s: %s", dir, err))
		job.SetStatus(StatusFailed, "project")
		return
	}

	// Phase 2: Build and render each page with bounded concurrency.
	job.SetStatus(StatusBuilding, "building")
	job.SetTotalPages(len(site.Pages))
	log.Info("building site", "pages", len(site.Pages))

	if len(site.Pages) == 0 {
		job.AddError("site has no pages")
		job.SetStatus(StatusFailed, "building")
		return
	}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		log.Error("output dir", "error", err)
		job.AddError(fmt.Sprintf("output dir: %s", err))
		job.SetStatus(StatusFailed, "building")
		return
	}

	type pageResult struct {
		symbol string
		err    error
	}
	results := make(chan pageResult, len(site.Pages))
	sem := make(chan struct{}, w.maxConcurrentPages)

	for _, page := range site.Pages {
		sem <- struct{}{}
		go func(p config.Page) {
			defer func() { <-sem }()
			if err := ctx.Err(); err != nil {
				results <- pageResult{symbol: p.Symbol, err: err}
				return
			}
			results <- pageResult{symbol: p.Symbol, err: w.renderPage(loader, p, job.OutputDir)}
		}(page)
	}

	hadErrors := false
	for range site.Pages {
		r := <-results
		if r.err != nil {
			log.Error("page build failed", "symbol", r.symbol, "error", r.err)
			job.AddError(fmt.Sprintf("%s: %s", r.symbol, r.err))
			hadErrors = true
			continue
		}
		job.IncrPagesRendered()
	}

	// Phase 3: Site index.
	if err := w.writeIndex(site, job.OutputDir); err != nil {
		log.Error("index write failed", "error", err)
		job.AddError(fmt.Sprintf("index: %s", err))
		hadErrors = true
	}

	snap := job.Snapshot()
	log.Info("build complete", "rendered", snap.Progress.PagesRendered, "errors", hadErrors)

	switch {
	case hadErrors && snap.Progress.PagesRendered > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "building")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}

// renderPage builds with a page-private cache: rendering attaches HTML
// to tree nodes, so concurrent pages must not share cached nodes.
func (w *Worker) renderPage(loader *inspect.Loader, p config.Page, outDir string) error {
	builder := doctree.NewBuilder(loader, doctree.NewCache(w.cacheSize), w.log)
	tree, err := builder.Build(p.Symbol, p.MaxDepth(w.defaultDepth))
	if err != nil {
		return err
	}
	body, err := render.Page(tree, w.conv, render.Options{
		HeadingLevel: p.HeadingLevel,
		Headless:     p.Headless,
	})
	if err != nil {
		return err
	}
	doc := htmlDocument(p.Symbol, body)
	return os.WriteFile(filepath.Join(outDir, PageFilename(p.Symbol)), []byte(doc), 0o644)
}

func (w *Worker) writeIndex(site config.Site, outDir string) error {
	var sb strings.Builder
	title := site.Title
	if title == "" {
		title = "Documentation"
	}
	sb.WriteString("<ul>\n")
	for _, p := range site.Pages {
		sb.WriteString(fmt.Sprintf("<li><a href=%q>%s</a></li>\n",
			PageFilename(p.Symbol), html.EscapeString(p.Symbol)))
	}
	sb.WriteString("</ul>\n")
	doc := htmlDocument(title, sb.String())
	return os.WriteFile(filepath.Join(outDir, "index.html"), []byte(doc), 0o644)
}

// PageFilename maps a symbol path to its output file name.
func PageFilename(symbol string) string {
	return strings.ReplaceAll(symbol, "/", "_") + ".html"
}

func htmlDocument(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body>
%s
</body>
</html>
`, html.EscapeString(title), body)
}
