package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"pitwall-results/internal/components/telemetry"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
	dumpHttp   *string
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file, `<name>.local.json5` is merged over it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs.")
	dumpHttp = rootCmd.PersistentFlags().String("dump-http", "", "Write every http exchange into this directory.")
}

var rootCmd = &cobra.Command{
	Use:   "pitwall",
	Short: "pitwall looks up race results from queries like \"Monaco 2024\".",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SignalContext returns a context that will live until Ctrl+C is pressed
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}

func fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}
