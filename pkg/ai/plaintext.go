package ai

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from model output or feed descriptions and
// collapses whitespace. Script and style bodies are dropped.
func PlainText(in string) string {
	if !strings.ContainsAny(in, "<&") {
		return collapseSpace(in)
	}
	z := html.NewTokenizer(strings.NewReader(in))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return collapseSpace(b.String())
			}
			return collapseSpace(in)
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "p", "div", "li":
				b.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if (string(name) == "script" || string(name) == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
