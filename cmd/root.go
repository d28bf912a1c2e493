// Package cmd provides the CLI commands for blockstage.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/blockstage/internal/config"
	"github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/logging"
	"github.com/manav03panchal/blockstage/internal/output"
	"github.com/manav03panchal/blockstage/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagConfig string
	flagDebug  bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "blockstage",
	Short: "Compose and run block programs for sprites on a terminal stage",
	Long: `blockstage lets you snap together small block programs (move, turn,
go to, say, think, repeat) for sprites and run them as an animation on a
2D stage. Sprites that bump into each other swap directions.

Examples:
  blockstage run 'repeat 4 [ move 20; turn 90 ]'
  blockstage run 'move 50' --sprite 'Dog@60,0=move 50'
  blockstage stage
  blockstage history`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for commands that never touch the stage
		switch cmd.Name() {
		case "completion", "help", "version", "path", "init":
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		}

		// Parse format flag
		var format output.Format
		switch flagFormat {
		case "json":
			format = output.FormatJSON
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		// Parse color flag
		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.Config = cfg

		ctx, err = runtime.New(opts)
		if err != nil {
			return errors.NewSystemErrorWithOp("open_database", "cannot open run history", err)
		}
		ctx.Formatter.Writer = cmd.OutOrStdout()

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show the stage and the block kinds
		return runOverview(cmd, args)
	},
}

// runOverview shows the initial stage and the available blocks.
func runOverview(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintKinds()
	}

	cli := ctx.CLIFormatter()
	cli.PrintStage(ctx.Snapshot(), ctx.Stage(stageCols()))
	cli.PrintKinds()
	cli.Muted("Run a program with: blockstage run 'move 10; turn 90'")
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		Die(err)
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/blockstage/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	// Add commands
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("blockstage %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// Die prints an error and exits.
func Die(err error) {
	if ctx != nil && ctx.IsJSON() {
		_ = ctx.JSONFormatter().PrintError(errors.Classify(err).String(), err.Error(), errors.GetSuggestion(err))
	} else {
		os.Stderr.WriteString("Error: " + errors.FormatByCategory(err) + "\n")
	}
	if ctx != nil {
		_ = ctx.Close()
	}
	os.Exit(1)
}
