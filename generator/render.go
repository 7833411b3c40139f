package generator

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// lyricsMarkdown only knows paragraphs and emphasis. Headings, lists, thematic
// breaks, code blocks, links and raw HTML are not parsed, so a lyric line such
// as "# Hook", "1. count it up" or "I keep <money> close" is shown as written.
// Hard wraps keep the line structure of verses.
var lyricsMarkdown = goldmark.New(
	goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(util.Prioritized(parser.NewEmphasisParser(), 500)),
	)),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// RenderLyrics converts model output to HTML for the result panel.
func RenderLyrics(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := lyricsMarkdown.Convert([]byte(text), &buf); err != nil {
		return plainLyrics(text), err
	}
	return template.HTML(buf.String()), nil
}

func plainLyrics(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}
