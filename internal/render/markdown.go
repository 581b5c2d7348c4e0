package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns a Markdown document into HTML. Implementations must
// pass the Separator token through unchanged and in order, or the
// round trip desynchronizes.
type Converter interface {
	Convert(markdown string) (string, error)
}

// GoldmarkConverter converts Markdown with goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewConverter builds the default converter. Raw HTML rendering is
// enabled so the separator comments survive conversion verbatim.
func NewConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (c *GoldmarkConverter) Convert(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
