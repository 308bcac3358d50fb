package host

import (
	"html"
	"strings"
)

// Snapshot is a JSON-friendly copy of a host subtree.
type Snapshot struct {
	Tag      string     `json:"tag,omitempty"`
	Key      string     `json:"key,omitempty"`
	Text     string     `json:"text,omitempty"`
	Children []Snapshot `json:"children,omitempty"`
}

// Snap copies the subtree rooted at n.
func Snap(n Node) Snapshot {
	switch v := n.(type) {
	case *Text:
		return Snapshot{Text: v.Data}
	case *Element:
		s := Snapshot{Tag: v.Tag, Key: v.Key}
		for _, c := range v.children {
			s.Children = append(s.Children, Snap(c))
		}
		return s
	default:
		return Snapshot{Text: n.TextContent()}
	}
}

// Render serializes the subtree rooted at n to markup. Keys are written as
// data-key attributes.
func Render(n Node) string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}

func render(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Text:
		b.WriteString(html.EscapeString(v.Data))
	case *Element:
		b.WriteByte('<')
		b.WriteString(v.Tag)
		if v.Key != "" {
			b.WriteString(` data-key="`)
			b.WriteString(html.EscapeString(v.Key))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		for _, c := range v.children {
			render(b, c)
		}
		b.WriteString("</")
		b.WriteString(v.Tag)
		b.WriteByte('>')
	case nil:
	default:
		b.WriteString(html.EscapeString(n.TextContent()))
	}
}
