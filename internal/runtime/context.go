// Package runtime wires the stage together for the commands: configuration,
// the run database, the state store, the interpreter, the collision detector
// and notice delivery.
package runtime

import (
	"math/rand/v2"
	"os"
	"sync/atomic"

	"github.com/manav03panchal/blockstage/internal/collision"
	"github.com/manav03panchal/blockstage/internal/config"
	"github.com/manav03panchal/blockstage/internal/interp"
	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/output"
	"github.com/manav03panchal/blockstage/internal/storage"
	"github.com/manav03panchal/blockstage/internal/store"
	"github.com/manav03panchal/blockstage/internal/timer"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.RuntimeConfig
	DB        *storage.DB
	Formatter *output.Formatter
	RunRepo   *storage.RunRepo

	Store       *store.Store
	Interpreter *interp.Interpreter
	Detector    *collision.Detector
	Notices     *notify.Dispatcher

	// Debug mode
	Debug bool

	rng        *rand.Rand
	collisions atomic.Int64
	detach     func()
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Config defaults to config.Global.
	Config *config.RuntimeConfig
	// Clock defaults to the wall clock.
	Clock timer.Clock
	// Rand drives sprite spawning; nil uses the package source.
	Rand *rand.Rand
	// Initial defaults to store.DefaultState.
	Initial *store.State
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context. The detector is attached and follows
// every run until Close.
func New(opts Options) (*Context, error) {
	// Check for environment variable override
	if envPath := os.Getenv("BLOCKSTAGE_DATABASE"); envPath != "" {
		if envPath == ":memory:" {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}
	clock := opts.Clock
	if clock == nil {
		clock = timer.Real{}
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	initial := store.DefaultState()
	if opts.Initial != nil {
		initial = opts.Initial.Clone()
	}

	c := &Context{
		Config:    cfg,
		DB:        db,
		Formatter: formatter,
		RunRepo:   storage.NewRunRepo(db),
		Store:     store.New(initial, store.WithHistory(cfg.Engine.HistorySize)),
		Notices:   notify.NewDispatcher(),
		Debug:     opts.Debug,
		rng:       opts.Rand,
	}

	c.Interpreter = interp.New(c.Store,
		interp.WithClock(clock),
		interp.WithPacing(cfg.Engine.Pacing),
		interp.WithPose(cfg.Pose()),
		interp.WithNotifier(c.Notices),
	)
	c.Detector = collision.New(c.Store,
		collision.WithTick(cfg.Engine.CollisionTick),
		collision.WithNotifier(c.Notices),
		collision.WithObserver(func(collision.Pair) { c.collisions.Add(1) }),
	)
	c.detach = c.Detector.Attach()

	return c, nil
}

// Close detaches the detector and closes the database.
func (c *Context) Close() error {
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	if c.DB != nil {
		db := c.DB
		c.DB = nil
		return db.Close()
	}
	return nil
}

// Stage returns the character grid for the configured stage size.
func (c *Context) Stage(cols int) output.Grid {
	return output.NewGrid(cols, c.Config.Stage.Width, c.Config.Stage.Height)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
