// Package cmd provides Cobra CLI commands for tabmatch.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmatch/internal/cli"
	"github.com/bnema/tabmatch/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:   "tabmatch",
		Short: "Find the open tab that best matches a URL",
		Long: `tabmatch scores how similar two URLs are and picks the best candidate
among a list of open tabs.

Matching follows a laxness ladder. Each rung ignores one more part of the
URL than the previous one:
  strict           - the whole URL must match
  lax_up_to_ref    - ignore www./m. host prefixes and the fragment
  lax_up_to_query  - also ignore the query string
  lax_up_to_path   - also accept pages below the key's directory

The scheme and port always have to match.

Candidates come from the command line, stdin, or a saved session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{ConfigFile: configFile, LogLevel: logLevel})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/tabmatch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoMatch) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
