package reader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fryou12/chapters/internal/chapter"
)

func TestProcessEPUBManifestOrder(t *testing.T) {
	var c collector
	if err := ProcessEPUB(writeEPUB(t), &c, Options{}); err != nil {
		t.Fatalf("ProcessEPUB: %v", err)
	}

	if len(c.got) != 2 {
		t.Fatalf("got %d chapters, want 2: %+v", len(c.got), c.got)
	}
	if c.got[0].Source != "text/ch2.xhtml" || c.got[1].Source != "text/ch1.xhtml" {
		t.Errorf("sources = %q, %q; want manifest order", c.got[0].Source, c.got[1].Source)
	}
	if c.got[0].Title != "" {
		t.Errorf("ch2 title = %q, want absent", c.got[0].Title)
	}
	if c.got[0].DisplayTitle() != chapter.DefaultTitle {
		t.Errorf("ch2 display title = %q, want %q", c.got[0].DisplayTitle(), chapter.DefaultTitle)
	}
	if c.got[1].Title != "Chapter One" {
		t.Errorf("ch1 title = %q, want %q", c.got[1].Title, "Chapter One")
	}
	if c.got[1].Content != ch1XHTML {
		t.Errorf("ch1 content should be the raw resource, got %q", c.got[1].Content)
	}
}

func TestProcessEPUBSpineOrder(t *testing.T) {
	var c collector
	if err := ProcessEPUB(writeEPUB(t), &c, Options{SpineOrder: true}); err != nil {
		t.Fatalf("ProcessEPUB: %v", err)
	}
	if len(c.got) != 2 {
		t.Fatalf("got %d chapters, want 2", len(c.got))
	}
	if c.got[0].Source != "text/ch1.xhtml" || c.got[1].Source != "text/ch2.xhtml" {
		t.Errorf("sources = %q, %q; want spine order", c.got[0].Source, c.got[1].Source)
	}
}

func TestProcessEPUBStripMarkup(t *testing.T) {
	var c collector
	if err := ProcessEPUB(writeEPUB(t), &c, Options{StripMarkup: true, SpineOrder: true}); err != nil {
		t.Fatalf("ProcessEPUB: %v", err)
	}
	if got, want := c.got[0].Content, "Chapter One It was a dark night."; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if got, want := c.got[1].Content, "Morning came."; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestProcessEPUBFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		var c collector
		err := ProcessEPUB(filepath.Join(t.TempDir(), "nope.epub"), &c, Options{})
		var pe *ProcessingError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ProcessingError, got %v", err)
		}
		if pe.Format != "EPUB" {
			t.Errorf("Format = %q, want EPUB", pe.Format)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected wrapped ErrNotExist, got %v", err)
		}
		if len(c.got) != 0 {
			t.Errorf("got %d chapters, want 0", len(c.got))
		}
	})

	t.Run("not a container", func(t *testing.T) {
		var c collector
		err := ProcessEPUB(writeFile(t, "bad.epub", "this is not a zip"), &c, Options{})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.HasPrefix(err.Error(), "error processing EPUB: ") {
			t.Errorf("unexpected message %q", err.Error())
		}
		if len(c.got) != 0 {
			t.Errorf("got %d chapters, want 0", len(c.got))
		}
	})

	t.Run("missing resource keeps earlier chapters", func(t *testing.T) {
		entries := epubEntries()
		// Drop ch1; the manifest reads ch2 first, then fails on ch1.
		kept := entries[:0]
		for _, e := range entries {
			if e.name != "OEBPS/text/ch1.xhtml" {
				kept = append(kept, e)
			}
		}
		var c collector
		err := ProcessEPUB(writeZip(t, "partial.epub", kept), &c, Options{})
		if err == nil {
			t.Fatal("expected error")
		}
		if len(c.got) != 1 || c.got[0].Source != "text/ch2.xhtml" {
			t.Errorf("got %+v, want only ch2", c.got)
		}
	})
}

func TestLookupTitle(t *testing.T) {
	titles := map[string]string{
		"text/ch1.xhtml": "One",
		"ch3.xhtml":      "Three",
	}
	tests := []struct {
		href string
		want string
	}{
		{"text/ch1.xhtml", "One"},
		{"other/ch3.xhtml", "Three"},
		{"text/ch2.xhtml", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := lookupTitle(titles, tt.href); got != tt.want {
			t.Errorf("lookupTitle(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
