package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/docmap/internal/config"
	"github.com/dgallion1/docmap/internal/doctree"
	"github.com/dgallion1/docmap/internal/render"
	"github.com/go-chi/chi/v5"
)

// excerptLimit caps page summaries in listings.
const excerptLimit = 160

// handleListPages lists the configured site pages with short summaries.
func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	site, err := config.LoadSite(s.cfg.SiteFile)
	if err != nil {
		jsonError(w, "site file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	type pageInfo struct {
		Symbol  string `json:"symbol"`
		URL     string `json:"url"`
		Summary string `json:"summary,omitempty"`
	}
	pages := make([]pageInfo, 0, len(site.Pages))
	for _, p := range site.Pages {
		info := pageInfo{Symbol: p.Symbol, URL: "/docs/" + p.Symbol}
		if tree, err := s.builder.Build(p.Symbol, 0); err == nil {
			info.Summary = s.summarize(tree)
		}
		pages = append(pages, info)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"title": site.Title,
		"pages": pages,
	})
}

func (s *Server) summarize(tree *doctree.Node) string {
	if tree.Docstring == nil || len(tree.Docstring.Sections) == 0 {
		return ""
	}
	frag, err := s.conv.Convert(tree.Docstring.Sections[0].Text)
	if err != nil {
		return ""
	}
	return render.Excerpt(frag, excerptLimit)
}

// handleListSymbols lists every documentable symbol in the loaded project.
func (s *Server) handleListSymbols(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"symbols": s.loader.Symbols()})
}

// handleSymbolTree returns the documentation tree for a symbol as JSON.
func (s *Server) handleSymbolTree(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	depth := s.queryDepth(r)

	tree, err := s.builder.Build(name, depth)
	if err != nil {
		if errors.Is(err, doctree.ErrEntityNotFound) {
			jsonError(w, "unknown symbol: "+name, http.StatusNotFound)
			return
		}
		jsonError(w, "build failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tree)
}

// handleDocsPage renders the documentation page for a symbol as HTML.
func (s *Server) handleDocsPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	depth := s.queryDepth(r)

	opts := render.Options{
		HeadingLevel: 1,
		Headless:     r.URL.Query().Get("headless") == "true",
	}
	if v := r.URL.Query().Get("heading_level"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			jsonError(w, "heading_level must be 0-6", http.StatusBadRequest)
			return
		}
		opts.HeadingLevel = n
	}

	// Rendering attaches HTML to tree nodes, so each request builds with
	// a private cache instead of the shared builder.
	builder := doctree.NewBuilder(s.loader, doctree.NewCache(0), s.log)
	tree, err := builder.Build(name, depth)
	if err != nil {
		if errors.Is(err, doctree.ErrEntityNotFound) {
			jsonError(w, "unknown symbol: "+name, http.StatusNotFound)
			return
		}
		jsonError(w, "build failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := render.Page(tree, s.conv, opts)
	if err != nil {
		s.log.Error("render failed", "symbol", name, "error", err)
		jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) queryDepth(r *http.Request) int {
	if v := r.URL.Query().Get("depth"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= -1 {
			return n
		}
	}
	return s.cfg.MaxDepth
}
