package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"pitwall-results/internal/race/resolver"
	"pitwall-results/internal/service"
	"strings"

	"github.com/spf13/cobra"
)

var interactiveFlags exportFlags

func init() {
	interactiveFlags = addExportFlags(interactiveCmd)
	rootCmd.AddCommand(interactiveCmd)
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive [--format csv,xlsx] [--out <dir>] [--no-export]",
	Short: "Prompts for races until a blank line, quit or exit.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a := newApp(ctx, interactiveFlags)
		defer a.Close(ctx)

		err := runInteractive(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.service.Lookup)
		if err != nil {
			fatal("failed to read input", err)
		}
	},
}

type lookupFunc func(ctx context.Context, raw string, selector resolver.Selector) (service.Report, error)

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "", "quit", "exit":
		return true
	}
	return false
}

// runInteractive reads one query per line from `in` until a quit word or EOF. Prompts for
// disambiguation read from the same input.
func runInteractive(ctx context.Context, in io.Reader, out io.Writer, lookup lookupFunc) error {
	reader := bufio.NewReader(in)
	selector := resolver.PromptSelector{In: reader, Out: out}

	fmt.Fprintln(out, `Enter a race and a year, ex. "Monaco 2024". A blank line, "quit" or "exit" stops.`)
	for ctx.Err() == nil {
		fmt.Fprint(out, "\nrace> ")
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		text := strings.TrimSpace(line)
		if isQuit(text) {
			return nil
		}

		report, err := lookup(ctx, text, selector)
		printReport(out, report, err)

		if readErr != nil {
			return nil
		}
	}
	return nil
}
