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
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for blockstage.

Besides commands and flags, the scripts complete costume names for
'run --sprite' (e.g. Dog@) and recorded run keys for 'history show'.

To load completions:

Bash:
  $ source <(blockstage completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ blockstage completion bash > /etc/bash_completion.d/blockstage
  # macOS:
  $ blockstage completion bash > $(brew --prefix)/etc/bash_completion.d/blockstage

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ blockstage completion zsh > "${fpath[1]}/_blockstage"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ blockstage completion fish | source

  # To load completions for each session, execute once:
  $ blockstage completion fish > ~/.config/fish/completions/blockstage.fish

PowerShell:
  PS> blockstage completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
