// Package docstring parses raw documentation text into structured
// sections suitable for per-section Markdown rendering.
package docstring

import "strings"

// Section is one titled block of a docstring. The leading untitled
// block has an empty Title.
type Section struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
	HTML  string `json:"html,omitempty"`
}

// Markdown returns the section's Markdown representation.
func (s *Section) Markdown() string {
	if s.Title != "" {
		return "**" + s.Title + "**\n\n" + s.Text
	}
	return s.Text
}

// SetHTML attaches converted HTML to the section.
func (s *Section) SetHTML(html string) { s.HTML = html }

// Docstring is a parsed doc comment. Type carries a declared type from
// the first section, if one was written ("int: number of retries").
type Docstring struct {
	Sections []*Section `json:"sections"`
	Type     string     `json:"type,omitempty"`
}

// sectionTitles are the recognized block headers, written as a bare
// word followed by a colon on its own line.
var sectionTitles = map[string]bool{
	"Args":       true,
	"Arguments":  true,
	"Attributes": true,
	"Example":    true,
	"Examples":   true,
	"Note":       true,
	"Notes":      true,
	"Parameters": true,
	"Raises":     true,
	"Returns":    true,
	"References": true,
	"See Also":   true,
	"Todo":       true,
	"Warning":    true,
	"Warnings":   true,
	"Yield":      true,
	"Yields":     true,
}

// Parse splits raw doc text into sections. It returns nil for empty
// input so callers can treat "no docstring" uniformly.
func Parse(raw string) *Docstring {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	d := &Docstring{}
	current := &Section{}
	var body []string

	flush := func() {
		current.Text = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Text != "" || current.Title != "" {
			d.Sections = append(d.Sections, current)
		}
		body = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if title, ok := strings.CutSuffix(trimmed, ":"); ok && sectionTitles[title] {
			flush()
			current = &Section{Title: title}
			continue
		}
		body = append(body, line)
	}
	flush()

	if len(d.Sections) == 0 {
		return nil
	}
	d.Type = splitDeclaredType(d.Sections[0])
	return d
}

// splitDeclaredType extracts a leading "type: description" annotation
// from the first line of the opening untitled section and strips it
// from the section text.
func splitDeclaredType(s *Section) string {
	if s.Title != "" {
		return ""
	}
	line, tail, multi := strings.Cut(s.Text, "\n")
	typ, rest, ok := strings.Cut(line, ": ")
	if !ok || typ == "" || rest == "" {
		return ""
	}
	if strings.ContainsAny(typ, " \t") {
		return ""
	}
	s.Text = rest
	if multi {
		s.Text += "\n" + tail
	}
	return typ
}
