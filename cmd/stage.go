package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/tui"
)

var stageSprites []string

// stageCmd represents the stage command.
var stageCmd = &cobra.Command{
	Use:     "stage [PROGRAM]",
	Aliases: []string{"editor", "tui"},
	Short:   "Open the interactive stage editor",
	Long: `Open an interactive terminal editor with the stage, the selected
sprite's program and the sprite list.

Keyboard Controls:
  m t g s k r  - Add move, turn, goto, say, think or repeat
  i            - Toggle adding into the selected repeat
  up/down      - Select a block
  x            - Delete the selected block
  c            - Clear the program
  n / d        - Add / remove a sprite
  tab          - Select the next sprite
  enter        - Run
  q            - Quit

Examples:
  blockstage stage
  blockstage stage 'repeat 10 [ move 10; turn 36 ]' --sprite Dog@80,0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStage,
}

func init() {
	stageCmd.Flags().StringArrayVarP(&stageSprites, "sprite", "s", nil,
		"Add a sprite: NAME[@X,Y][=PROGRAM] (repeatable)")
	_ = stageCmd.RegisterFlagCompletionFunc("sprite", completeSprites)
	rootCmd.AddCommand(stageCmd)
}

func runStage(cmd *cobra.Command, args []string) error {
	program := ""
	if len(args) == 1 {
		program = args[0]
	}
	if err := loadScene(program, stageSprites); err != nil {
		return err
	}

	config := tui.EditorConfig{
		Engine: ctx,
		Grid:   ctx.Stage(48),
	}
	return tui.Run(config, func(s notify.Sink) { ctx.Notices.Add(s) })
}
