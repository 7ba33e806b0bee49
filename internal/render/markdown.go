package render

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// newMarkdown builds the converter for section content. Raw HTML in the
// source is dropped (no html.WithUnsafe), so converted output is safe to
// insert as-is.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

// sectionContent renders free text either as an escaped paragraph or,
// when md is set, as markdown.
func sectionContent(md goldmark.Markdown, text string) template.HTML {
	if text == "" {
		return ""
	}
	if md != nil {
		var buf bytes.Buffer
		if err := md.Convert([]byte(text), &buf); err == nil {
			return template.HTML(`<div class="section-content markdown">` + buf.String() + `</div>`)
		}
	}
	return template.HTML(`<p class="section-content">` + template.HTMLEscapeString(text) + `</p>`)
}
