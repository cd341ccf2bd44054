package resolver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseSelection interprets a typed answer to a disambiguation prompt. Anything other than an
// unsigned integer in [1, n] is 0, meaning cancel.
func ParseSelection(text string, n int) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0
		}
	}
	choice, err := strconv.Atoi(text)
	if err != nil || choice < 1 || choice > n {
		return 0
	}
	return choice
}

// PromptSelector lists the candidates on Out and reads a single line answer from In.
type PromptSelector struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewPromptSelector(in io.Reader, out io.Writer) PromptSelector {
	return PromptSelector{In: bufio.NewReader(in), Out: out}
}

var titleCaser = cases.Title(language.English)

// Title is how an alias is shown to the user, ex. "las vegas" -> "Las Vegas".
func Title(alias string) string {
	return titleCaser.String(alias)
}

func (p PromptSelector) SelectOne(ctx context.Context, year int, candidates []Candidate) (int, error) {
	fmt.Fprintln(p.Out, "\nDid you mean one of these?")

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(p.Out)
	t.AppendHeader(table.Row{"#", "Race", "Similarity"})
	for i, c := range candidates {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%s %d", Title(c.Alias), year),
			fmt.Sprintf("%.2f", c.Score),
		})
	}
	t.Render()

	fmt.Fprint(p.Out, "\nEnter number (or 0 to cancel): ")
	line, err := p.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, err
	}
	return ParseSelection(line, len(candidates)), nil
}
