package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/parser"
	"github.com/manav03panchal/blockstage/internal/store"
	"github.com/manav03panchal/blockstage/internal/validate"
)

var (
	runSprites []string
	runFrames  bool
	runCols    int
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run PROGRAM",
	Short: "Run a block program on the stage",
	Long: `Run a block program for the first sprite (the cat) and print the result.

Statements are separated by ';' or new lines:
  move N            move N steps in the current direction
  turn N            turn N degrees
  goto X Y          jump to X, Y
  say "text" S      show a speech bubble for S seconds
  think "text" S    show a thought bubble for S seconds
  repeat N [ ... ]  run the bracketed blocks N times

Extra sprites join with --sprite NAME[@X,Y][=PROGRAM]. Before the run every
sprite returns to the centre; if two or more sprites have move blocks, the
first two swap directions.

Examples:
  blockstage run 'move 10'
  blockstage run 'repeat 4 [ move 20; turn 90 ]; say "Done!" 1'
  blockstage run 'move 100' --sprite 'Dog@100,0=move 100' --frames`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringArrayVarP(&runSprites, "sprite", "s", nil,
		"Add a sprite: NAME[@X,Y][=PROGRAM] (repeatable)")
	runCmd.Flags().BoolVar(&runFrames, "frames", false,
		"Print the stage after every change")
	runCmd.Flags().IntVar(&runCols, "cols", 0,
		"Stage width in characters (default: fit terminal)")
	_ = runCmd.RegisterFlagCompletionFunc("sprite", completeSprites)
	rootCmd.AddCommand(runCmd)
}

// Stage width bounds in characters.
const (
	minStageCols = 16
	maxStageCols = 200
)

// stageCols picks a stage width that fits the terminal.
func stageCols() int {
	if runCols > 0 {
		return runCols
	}
	return min(max(ctx.Formatter.Width()-2, minStageCols), 60)
}

// loadScene puts program on the first sprite and adds the extra sprites,
// leaving the first sprite selected.
func loadScene(program string, sprites []string) error {
	first := ctx.Snapshot().ActiveActorID
	if _, err := ctx.LoadProgram(first, program); err != nil {
		return err
	}
	for _, s := range sprites {
		spec, err := parser.ParseSprite(s)
		if err != nil {
			return err
		}
		a, err := ctx.AddSprite(spec)
		if err != nil {
			return err
		}
		ctx.Debugf("added sprite %s (%s)", a.ID, a.Name)
	}
	return ctx.SelectActor(first)
}

func runRun(cmd *cobra.Command, args []string) error {
	program := ""
	if len(args) == 1 {
		program = args[0]
	}
	if runCols != 0 {
		if err := validate.InRange("cols", runCols, minStageCols, maxStageCols); err != nil {
			return err
		}
	}
	if err := loadScene(program, runSprites); err != nil {
		return err
	}

	grid := ctx.Stage(stageCols())
	cli := ctx.CLIFormatter()

	var notices notify.Recorder
	ctx.Notices.Add(&notices)
	if !ctx.IsJSON() {
		ctx.Notices.Add(notify.SinkFunc(func(n notify.Notice) error {
			cli.PrintNotice(n)
			return nil
		}))
	}

	if runFrames && !ctx.IsJSON() {
		var mu sync.Mutex
		cancel := ctx.Store.Subscribe(func(prev, next store.State) {
			if !next.IsRunning || !moved(prev, next) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			cli.PrintStage(next, grid)
		})
		defer cancel()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rec, runErr := ctx.Run(runCtx)
	if rec == nil {
		return runErr
	}

	final := ctx.Snapshot()
	if ctx.IsJSON() {
		if err := ctx.JSONFormatter().PrintRun(rec, final, notices.Titles()); err != nil {
			return err
		}
		return runErr
	}

	cli.PrintStage(final, grid)
	cli.PrintSprites(final)
	cli.PrintRunSummary(rec)
	return runErr
}

// moved reports whether any sprite changed position, heading or bubble.
func moved(prev, next store.State) bool {
	if len(prev.Actors) != len(next.Actors) {
		return true
	}
	for i, a := range next.Actors {
		b := prev.Actors[i]
		if a.X != b.X || a.Y != b.Y || a.Direction != b.Direction || a.Message != b.Message {
			return true
		}
	}
	return false
}
