package webpage

import (
	"reflect"
	"strings"
	"testing"
)

// TestParserLinks tests hyperlink extraction and resolution.
func TestParserLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts anchors in document order", func(t *testing.T) {
		t.Parallel()

		p, err := NewParser("http://example.com")
		if err != nil {
			t.Fatal(err)
		}

		input := `<html><body>
			<a href="http://one.example/">one</a>
			<a href="/about">about</a>
			<a href="mailto:admin@example.com">mail</a>
		</body></html>`

		got, err := p.ParseBytes([]byte(input), "text/html; charset=utf-8")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"http://one.example/",
			"http://example.com/about",
			"mailto:admin@example.com",
		}
		if !reflect.DeepEqual(got.Links, want) {
			t.Errorf("Links = %v, want %v", got.Links, want)
		}
	})

	t.Run("duplicates preserved", func(t *testing.T) {
		t.Parallel()

		p, err := NewParser("http://example.com")
		if err != nil {
			t.Fatal(err)
		}

		input := `<a href="/x">1</a><a href="/x">2</a>`
		got, err := p.ParseBytes([]byte(input), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Links) != 2 {
			t.Errorf("expected 2 links, got %d", len(got.Links))
		}
	})

	t.Run("anchors without href ignored", func(t *testing.T) {
		t.Parallel()

		p, err := NewParser("http://example.com")
		if err != nil {
			t.Fatal(err)
		}

		got, err := p.ParseBytes([]byte(`<a name="top">anchor</a>`), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Links) != 0 {
			t.Errorf("expected no links, got %v", got.Links)
		}
	})
}

// TestParserText tests visible text extraction.
func TestParserText(t *testing.T) {
	t.Parallel()

	t.Run("scripts and styles excluded", func(t *testing.T) {
		t.Parallel()

		p, err := NewParser("http://example.com")
		if err != nil {
			t.Fatal(err)
		}

		input := `<html><head>
			<title>My Page</title>
			<style>body { color: red }</style>
			<script>var secret = "hidden";</script>
		</head><body><p>visible   content</p></body></html>`

		got, err := p.ParseBytes([]byte(input), "text/html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got.Title != "My Page" {
			t.Errorf("Title = %q, want My Page", got.Title)
		}
		if strings.Contains(got.Text, "secret") {
			t.Errorf("script content leaked into text: %q", got.Text)
		}
		if strings.Contains(got.Text, "color") {
			t.Errorf("style content leaked into text: %q", got.Text)
		}
		if !strings.Contains(got.Text, "visible content") {
			t.Errorf("expected collapsed visible text, got %q", got.Text)
		}
	})

	t.Run("empty input yields empty outputs", func(t *testing.T) {
		t.Parallel()

		p, err := NewParser("http://example.com")
		if err != nil {
			t.Fatal(err)
		}

		got, err := p.ParseBytes(nil, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Links) != 0 || got.Text != "" {
			t.Errorf("expected empty extraction, got %+v", got)
		}
	})
}
