package web

import (
	"bytes"
	"log"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md renders assistant answers (markdown) into HTML for the chat page.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// renderMarkdown converts the answer to HTML. On a render failure the raw
// text is returned so the client can still display something.
func renderMarkdown(answer string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(answer), &buf); err != nil {
		log.Printf("web: markdown render: %v", err)
		return answer
	}
	return buf.String()
}
