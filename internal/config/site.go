package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Site describes the documentation pages to generate.
type Site struct {
	Title   string `yaml:"title"`
	Project string `yaml:"project"`
	Pages   []Page `yaml:"pages"`
}

// Page is one configured documentation page.
type Page struct {
	Symbol       string `yaml:"symbol"`
	Depth        *int   `yaml:"depth"`
	HeadingLevel int    `yaml:"heading_level"`
	Headless     bool   `yaml:"headless"`
}

// MaxDepth returns the page's depth limit, or the given default when
// the page does not set one.
func (p Page) MaxDepth(fallback int) int {
	if p.Depth == nil {
		return fallback
	}
	return *p.Depth
}

// LoadSite reads and validates a site file.
func LoadSite(path string) (Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Site{}, fmt.Errorf("read site file: %w", err)
	}
	return ParseSite(data)
}

// ParseSite parses site YAML.
func ParseSite(data []byte) (Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Site{}, fmt.Errorf("parse site file: %w", err)
	}
	for i, p := range s.Pages {
		if p.Symbol == "" {
			return Site{}, fmt.Errorf("page %d: symbol is required", i)
		}
		if p.HeadingLevel < 0 || p.HeadingLevel > 6 {
			return Site{}, fmt.Errorf("page %d: heading_level must be 0-6", i)
		}
	}
	return s, nil
}
