package docstring

import "testing"

func TestParse_Sections(t *testing.T) {
	raw := `Creates a Widget with the given color.

Longer description spanning
two lines.

Args:
    color: The widget color.
    size: The widget size.

Returns:
    The new widget.
`
	d := Parse(raw)
	if d == nil {
		t.Fatal("expected a docstring, got nil")
	}
	if len(d.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(d.Sections))
	}
	if d.Sections[0].Title != "" {
		t.Errorf("expected untitled first section, got %q", d.Sections[0].Title)
	}
	if d.Sections[1].Title != "Args" {
		t.Errorf("expected Args section, got %q", d.Sections[1].Title)
	}
	if d.Sections[2].Title != "Returns" {
		t.Errorf("expected Returns section, got %q", d.Sections[2].Title)
	}
	if d.Type != "" {
		t.Errorf("expected no declared type, got %q", d.Type)
	}
}

func TestParse_Empty(t *testing.T) {
	if d := Parse(""); d != nil {
		t.Errorf("expected nil for empty input, got %+v", d)
	}
	if d := Parse("   \n\t\n"); d != nil {
		t.Errorf("expected nil for blank input, got %+v", d)
	}
}

func TestParse_DeclaredType(t *testing.T) {
	d := Parse("int: The number of retries.\n\nMore detail.")
	if d == nil {
		t.Fatal("expected a docstring, got nil")
	}
	if d.Type != "int" {
		t.Errorf("expected declared type %q, got %q", "int", d.Type)
	}
	if got := d.Sections[0].Text; got != "The number of retries.\n\nMore detail." {
		t.Errorf("expected type prefix stripped, got %q", got)
	}
}

func TestParse_NoDeclaredType(t *testing.T) {
	tests := []string{
		"Plain summary line.",
		"not a type because of spaces: description",
	}
	for _, raw := range tests {
		d := Parse(raw)
		if d == nil {
			t.Fatalf("expected docstring for %q", raw)
		}
		if d.Type != "" {
			t.Errorf("%q: expected no declared type, got %q", raw, d.Type)
		}
	}
}

func TestSectionMarkdown(t *testing.T) {
	s := &Section{Title: "Returns", Text: "The new widget."}
	want := "**Returns**\n\nThe new widget."
	if got := s.Markdown(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	plain := &Section{Text: "Summary."}
	if got := plain.Markdown(); got != "Summary." {
		t.Errorf("expected %q, got %q", "Summary.", got)
	}
}
