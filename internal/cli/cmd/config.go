package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmatch/internal/cli/styles"
	"github.com/bnema/tabmatch/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where tabmatch reads its configuration and stores its data.`,
}

var configStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show config file, database and effective matching settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigStatus,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Long: `Print a JSON schema describing config.toml, for editor completion
and validation (for example with taplo).`,
	Args: cobra.NoArgs,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configStatusCmd, configSchemaCmd)
}

func runConfigStatus(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	path := configFile
	if path == "" {
		if path, err = config.GetConfigFile(); err != nil {
			return err
		}
	}

	lax, err := app.Config.ScorerFlags()
	if err != nil {
		return err
	}
	version, err := app.SchemaVersion()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	renderer := styles.NewConfigRenderer(app.Theme)
	fmt.Println(renderer.RenderStatus(styles.ConfigStatus{
		ConfigFile:    path,
		DatabaseFile:  app.Config.Database.Path,
		SchemaVersion: version,
		LogDir:        app.Config.Logging.LogDir,
		FileLogging:   app.Config.Logging.EnableFileLog,
		MetricsFile:   app.Config.Metrics.TextfilePath,
		Laxness:       lax,
	}))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(schema, '\n'))
	return err
}
