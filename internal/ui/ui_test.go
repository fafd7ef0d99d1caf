package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"ALWAYS":  ColorAlways,
		" never":  ColorNever,
		"":        ColorAuto,
		"rainbow": ColorAuto,
	}
	for in, want := range cases {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMessagesWithoutColor(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("disableColor must win over --color=always")
	}

	u.Infof("fetched %d jobs\n", 3)
	u.Warnf("dropped %s", "beta")
	if out.String() != "fetched 3 jobs\n" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "dropped beta") {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
}

func TestStartIndicatorSkipsNonTerminals(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)
	if stop := u.StartIndicator("Scraping"); stop != nil {
		stop()
		t.Fatalf("expected no indicator for a buffer")
	}
	if errOut.Len() != 0 {
		t.Fatalf("indicator wrote to a non-terminal: %q", errOut.String())
	}
}
