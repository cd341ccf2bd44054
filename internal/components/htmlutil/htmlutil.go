package htmlutil

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GetText concatenates the text under `node` in document order. Script and style contents
// are left out and a <br> reads as a single space.
func GetText(node *html.Node) string {
	var sb strings.Builder
	writeText(&sb, node)
	return sb.String()
}

func writeText(sb *strings.Builder, node *html.Node) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		sb.WriteString(node.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch node.DataAtom {
		case atom.Script, atom.Style, atom.Template:
			return
		case atom.Br:
			sb.WriteByte(' ')
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(sb, child)
	}
}

// CellText is the text of a table cell with non-printable characters dropped and the ends
// trimmed. Inner spacing is left as written.
func CellText(node *html.Node) string {
	text := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, GetText(node))
	return strings.TrimSpace(text)
}
