package commands

import (
	"os"
	"pitwall-results/internal/race/resolver"
	"strings"

	"github.com/spf13/cobra"
)

var lookupFlags exportFlags

func init() {
	lookupFlags = addExportFlags(lookupCmd)
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <words...> [--format csv,xlsx] [--out <dir>] [--no-export]",
	Short: "Looks up the results of a single race, ex. `pitwall lookup monaco gp 2024`.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a := newApp(ctx, lookupFlags)

		selector := resolver.NewPromptSelector(cmd.InOrStdin(), cmd.OutOrStdout())
		report, err := a.service.Lookup(ctx, strings.Join(args, " "), selector)
		printReport(cmd.OutOrStdout(), report, err)

		a.Close(ctx)
		if err != nil {
			os.Exit(1)
		}
	},
}
