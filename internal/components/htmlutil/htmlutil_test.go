package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func findCell(t *testing.T, doc string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader("<table><tr>" + doc + "</tr></table>"))
	require.NoError(t, err)

	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Td {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, found)
	return found
}

func TestCellText(t *testing.T) {
	testCases := []struct {
		cell     string
		expected string
	}{
		{cell: `<td>25</td>`, expected: "25"},
		{cell: `<td>  +1 Lap </td>`, expected: "+1 Lap"},
		{cell: `<td><a href="/d/1"><span>Lando</span> <span>Norris</span></a></td>`, expected: "Lando Norris"},
		{cell: `<td>Lando<br>Norris</td>`, expected: "Lando Norris"},
		{cell: `<td>DNF<script>track("dnf")</script><!-- retired --></td>`, expected: "DNF"},
		{cell: "<td>\u200bMcLaren\u0007</td>", expected: "McLaren"},
		{cell: `<td></td>`, expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, CellText(findCell(t, test.cell)), test.cell)
	}
}

func TestGetTextNil(t *testing.T) {
	require.Equal(t, "", GetText(nil))
}
