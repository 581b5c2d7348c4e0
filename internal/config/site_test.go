package config

import (
	"strings"
	"testing"
)

func TestParseSite(t *testing.T) {
	data := []byte(`title: Widgets API
project: ./
pages:
  - symbol: widgets.Widget
    depth: 2
    heading_level: 2
  - symbol: widgets.New
    headless: true
`)
	s, err := ParseSite(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Title != "Widgets API" {
		t.Errorf("expected title %q, got %q", "Widgets API", s.Title)
	}
	if len(s.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(s.Pages))
	}
	if got := s.Pages[0].MaxDepth(-1); got != 2 {
		t.Errorf("expected depth 2, got %d", got)
	}
	if got := s.Pages[1].MaxDepth(-1); got != -1 {
		t.Errorf("expected fallback depth -1, got %d", got)
	}
	if !s.Pages[1].Headless {
		t.Error("expected second page to be headless")
	}
}

func TestParseSite_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing symbol", "pages:\n  - heading_level: 1\n", "symbol is required"},
		{"bad heading level", "pages:\n  - symbol: x\n    heading_level: 9\n", "heading_level"},
		{"bad yaml", "pages: [", "parse site file"},
	}
	for _, tt := range tests {
		_, err := ParseSite([]byte(tt.data))
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}
