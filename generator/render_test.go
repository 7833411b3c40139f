package generator

import (
	"context"
	"strings"
	"testing"
)

func TestRenderLyricsKeepsLineBreaks(t *testing.T) {
	out, err := RenderLyrics("**Verse 1:**\nfirst line\nsecond line\n\n**Hook:**\nhook line")
	if err != nil {
		t.Fatalf("RenderLyrics: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<strong>Verse 1:</strong>") {
		t.Errorf("section label not rendered: %s", s)
	}
	if !strings.Contains(s, "first line<br") {
		t.Errorf("hard wrap missing: %s", s)
	}
	if strings.Count(s, "<p>") != 2 {
		t.Errorf("expected two paragraphs: %s", s)
	}
}

func TestRenderLyricsEscapesRawHTML(t *testing.T) {
	out, err := RenderLyrics("Verse <script>alert(1)</script>\nline")
	if err != nil {
		t.Fatalf("RenderLyrics: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "<script>") {
		t.Fatalf("raw html passed through: %s", s)
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("raw html not shown as text: %s", s)
	}
}

func TestRenderLyricsKeepsTextVerbatim(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		want   []string
		forbid []string
	}{
		{
			name:   "bracketed word under dashes",
			in:     "Verse 1:\n---\nI keep <money> on my mind",
			want:   []string{"Verse 1:<br", "---<br", "I keep &lt;money&gt; on my mind"},
			forbid: []string{"<h2", "<hr", "raw HTML omitted"},
		},
		{
			name:   "list markers",
			in:     "1. count it up\n- stack it high",
			want:   []string{"1. count it up<br", "- stack it high"},
			forbid: []string{"<ol", "<ul", "<li"},
		},
		{
			name:   "hash label",
			in:     "# Hook\nrun it back",
			want:   []string{"# Hook<br", "run it back"},
			forbid: []string{"<h1"},
		},
		{
			name:   "indented bar",
			in:     "Verse:\n\n    four spaces in",
			want:   []string{"four spaces in"},
			forbid: []string{"<pre", "<code"},
		},
		{
			name:   "bracketed section label",
			in:     "[Chorus]\nwe up",
			want:   []string{"[Chorus]<br", "we up"},
			forbid: []string{"<a "},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := RenderLyrics(c.in)
			if err != nil {
				t.Fatalf("RenderLyrics: %v", err)
			}
			s := string(out)
			for _, w := range c.want {
				if !strings.Contains(s, w) {
					t.Errorf("missing %q in %s", w, s)
				}
			}
			for _, f := range c.forbid {
				if strings.Contains(s, f) {
					t.Errorf("unexpected %q in %s", f, s)
				}
			}
		})
	}
}

func TestPlainLyricsEscapes(t *testing.T) {
	got := string(plainLyrics("a<b\nc"))
	if got != "a&lt;b<br>\nc" {
		t.Fatalf("plainLyrics = %q", got)
	}
}

func TestMockLLMUsesTopic(t *testing.T) {
	out, err := MockLLM{}.Complete(context.Background(), BuildLyricsPrompt("money"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "money") || !strings.Contains(out, "Hook:") {
		t.Fatalf("mock output = %q", out)
	}
}
