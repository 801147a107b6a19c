package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/feedback/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(5 * time.Second)
			fmt.Fprintf(os.Stderr, "feedback crashed: %v\n", r)
			os.Exit(2)
		}
	}()

	if !colorAllowed(os.Stderr.Fd(), os.LookupEnv) {
		errors.DisableColors()
	}

	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// colorAllowed reports whether error output on fd may use ANSI colors.
// NO_COLOR (https://no-color.org) turns them off regardless of the terminal.
func colorAllowed(fd uintptr, lookupEnv func(string) (string, bool)) bool {
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func rootCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Toast notifications and API error reporting for Vango apps",
		Long: `feedback relays toast notifications to browsers over WebSocket.

Backends POST toasts and caught API errors to the server; every connected
page receives them as "vango:toast" events.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				errors.DisableColors()
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	cmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	return cmd
}
