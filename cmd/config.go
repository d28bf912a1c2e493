package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/blockstage/internal/config"
	"github.com/manav03panchal/blockstage/internal/errors"
)

var configFlagForce bool

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Manage application configuration",
	Long: `Show the effective configuration or write a default config file.

Values come from the built-in defaults, then the config file, then the
environment (BLOCKSTAGE_PACING, BLOCKSTAGE_COLLISION_TICK,
BLOCKSTAGE_HISTORY_SIZE, BLOCKSTAGE_STAGE_WIDTH, BLOCKSTAGE_STAGE_HEIGHT,
BLOCKSTAGE_DEFAULT_DIRECTION).

Examples:
  blockstage config show
  blockstage config path
  blockstage config init`,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(ctx.Config)
		}
		raw, err := yaml.Marshal(ctx.Config)
		if err != nil {
			return err
		}
		ctx.Formatter.Print(string(raw))
		return nil
	},
}

// configPathCmd prints where the config file is read from.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(configPath())
	},
}

// configInitCmd writes the defaults to the config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configFlagForce {
			return errors.NewUserErrorWithField("path", path, "config file already exists",
				"Use --force to overwrite it.")
		}
		if err := config.Write(path, config.DefaultRuntimeConfig()); err != nil {
			return err
		}
		cmd.Println("Wrote " + path)
		return nil
	},
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.DefaultPath()
}

func init() {
	configInitCmd.Flags().BoolVar(&configFlagForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
