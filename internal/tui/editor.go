package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/model"
	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/output"
	"github.com/manav03panchal/blockstage/internal/store"
	"github.com/manav03panchal/blockstage/internal/timer"
)

// Engine is the set of stage operations the editor drives.
type Engine interface {
	Snapshot() store.State
	AddBlock(actorID string, kind block.Kind) (block.Block, error)
	AddChildToRepeat(actorID, parentID string, child block.Block) error
	RemoveBlock(actorID, id string) error
	UpdateBlock(actorID, id string, patch block.Patch) error
	ClearBlocks(actorID string) error
	AddActor() store.Actor
	RemoveActor(id string) error
	SelectActor(id string) error
	Run(ctx context.Context) (*model.RunRecord, error)
}

// tickMsg is sent when the frame timer ticks.
type tickMsg time.Time

// runDoneMsg is sent when a run started from the editor returns.
type runDoneMsg struct {
	rec *model.RunRecord
	err error
}

// keyKinds maps editor keys to the block kind they add.
var keyKinds = map[string]block.Kind{
	"m": block.KindMove,
	"t": block.KindTurn,
	"g": block.KindGoto,
	"s": block.KindSay,
	"k": block.KindThink,
	"r": block.KindRepeat,
}

// editKeys change the program or the sprite list and are ignored while a
// run is in progress.
var editKeys = map[string]bool{
	"x": true, "delete": true, "backspace": true,
	"c": true, "n": true, "d": true, "e": true,
	"+": true, "=": true, "-": true, ">": true, "<": true,
}

// Nudge sizes for +/- and </>.
const (
	nudgeSteps   = 10
	nudgeDegrees = 15
	nudgeXY      = 10
	nudgeSeconds = 0.5
)

// EditorModel is the bubbletea model for the stage editor.
type EditorModel struct {
	engine   Engine
	grid     output.Grid
	clock    timer.Clock
	animator *Animator
	notices  chan notify.Notice
	ctx      context.Context
	cancel   context.CancelFunc

	// Data
	state store.State

	// UI state
	width      int
	height     int
	cursor     int
	nest       bool
	editing    bool
	input      string
	running    bool
	runStart   time.Time
	err        error
	message    string
	messageExp time.Time
	lastRun    *model.RunRecord

	// Configuration
	frameInterval time.Duration
}

// EditorConfig holds configuration for the editor.
type EditorConfig struct {
	Engine        Engine
	Grid          output.Grid
	Clock         timer.Clock
	FrameInterval time.Duration
	Glide         time.Duration
}

// NewEditorModel creates a new editor model.
func NewEditorModel(config EditorConfig) *EditorModel {
	if config.FrameInterval == 0 {
		config.FrameInterval = 33 * time.Millisecond
	}
	if config.Glide == 0 {
		config.Glide = DefaultGlide
	}
	if config.Clock == nil {
		config.Clock = timer.Real{}
	}
	if config.Grid.Cols == 0 {
		config.Grid = output.NewGrid(48, 480, 360)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &EditorModel{
		engine:        config.Engine,
		grid:          config.Grid,
		clock:         config.Clock,
		animator:      NewAnimator(config.Glide),
		notices:       make(chan notify.Notice, 32),
		ctx:           ctx,
		cancel:        cancel,
		frameInterval: config.FrameInterval,
	}
	m.refresh()
	return m
}

// Sink returns a notice sink feeding the editor's status line. Notices that
// arrive faster than frames are dropped.
func (m *EditorModel) Sink() notify.Sink {
	return notify.SinkFunc(func(n notify.Notice) error {
		select {
		case m.notices <- n:
		default:
		}
		return nil
	})
}

// Init initializes the model.
func (m *EditorModel) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model.
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.frame()
		return m, m.tickCmd()

	case runDoneMsg:
		m.running = false
		m.lastRun = msg.rec
		if msg.err != nil && !errors.Is(msg.err, errors.ErrEmptyProgram) {
			m.err = msg.err
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

// frame advances glides, drains notices and expires the status line.
func (m *EditorModel) frame() {
	m.refresh()
	m.animator.Step(m.frameInterval)

drain:
	for {
		select {
		case n := <-m.notices:
			m.setMessage(n.Title, 2*time.Second)
		default:
			break drain
		}
	}

	if !m.messageExp.IsZero() && m.clock.Now().After(m.messageExp) {
		m.message = ""
		m.messageExp = time.Time{}
	}
}

// busy reports whether a run is in progress.
func (m *EditorModel) busy() bool {
	return m.running || m.engine.Snapshot().IsRunning
}

// handleKeyPress handles keyboard input.
func (m *EditorModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleTextInput(msg)
	}

	key := msg.String()
	_, adds := keyKinds[key]
	if (adds || editKeys[key]) && m.busy() {
		m.setMessage("Running...", time.Second)
		return m, nil
	}
	if adds {
		m.addBlock(keyKinds[key])
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.cancel()
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case "i":
		m.nest = !m.nest

	case "x", "delete", "backspace":
		rows := m.rows()
		if m.cursor < len(rows) {
			m.check(m.engine.RemoveBlock("", rows[m.cursor].Block.ID))
		}

	case "c":
		m.check(m.engine.ClearBlocks(""))
		m.cursor = 0

	case "n":
		a := m.engine.AddActor()
		m.cursor = 0
		m.setMessage(fmt.Sprintf("Added %s", a.Name), 2*time.Second)

	case "d":
		if err := m.engine.RemoveActor(m.state.ActiveActorID); errors.Is(err, errors.ErrLastActor) {
			m.setMessage("Cannot remove the only sprite", 2*time.Second)
		} else {
			m.check(err)
			m.cursor = 0
		}

	case "+", "=":
		m.nudge(1, false)

	case "-":
		m.nudge(-1, false)

	case ">":
		m.nudge(1, true)

	case "<":
		m.nudge(-1, true)

	case "e":
		if b, ok := m.selected(); ok && (b.Kind == block.KindSay || b.Kind == block.KindThink) {
			m.editing = true
			m.input = b.Params.Text
		}

	case "tab":
		m.check(m.engine.SelectActor(m.nextActor()))
		m.cursor = 0

	case "enter", " ":
		if m.running || m.state.IsRunning {
			m.setMessage("Already running", time.Second)
			return m, nil
		}
		m.running = true
		m.runStart = m.clock.Now()
		m.err = nil
		return m, m.runCmd()
	}

	m.refresh()
	return m, nil
}

func (m *EditorModel) addBlock(kind block.Kind) {
	rows := m.rows()
	if m.nest && m.cursor < len(rows) && rows[m.cursor].Block.IsRepeat() {
		m.check(m.engine.AddChildToRepeat("", rows[m.cursor].Block.ID, block.New(kind)))
	} else {
		_, err := m.engine.AddBlock("", kind)
		m.check(err)
	}
	m.refresh()
}

// handleTextInput edits the selected bubble's text. Enter saves, esc
// cancels.
func (m *EditorModel) handleTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		if m.busy() {
			m.setMessage("Running...", time.Second)
			break
		}
		if b, ok := m.selected(); ok {
			text := m.input
			m.check(m.engine.UpdateBlock("", b.ID, block.Patch{Text: &text}))
		}
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyCtrlC:
		m.cancel()
		return m, tea.Quit
	}
	m.refresh()
	return m, nil
}

// selected returns the block under the cursor.
func (m *EditorModel) selected() (block.Block, bool) {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return block.Block{}, false
	}
	return rows[m.cursor].Block, true
}

// nudge steps the selected block's main parameter, or its second one
// (goto y, bubble seconds) when alt is set.
func (m *EditorModel) nudge(dir float64, alt bool) {
	b, ok := m.selected()
	if !ok {
		return
	}
	p := b.Params
	var patch block.Patch
	switch {
	case b.Kind == block.KindMove && !alt:
		patch.Steps = store.Float(p.Steps + dir*nudgeSteps)
	case b.Kind == block.KindTurn && !alt:
		patch.Degrees = store.Float(p.Degrees + dir*nudgeDegrees)
	case b.Kind == block.KindGoto && !alt:
		patch.X = store.Float(p.X + dir*nudgeXY)
	case b.Kind == block.KindGoto:
		patch.Y = store.Float(p.Y + dir*nudgeXY)
	case b.Kind == block.KindSay, b.Kind == block.KindThink:
		patch.Seconds = store.Float(max(p.Seconds+dir*nudgeSeconds, 0))
	case b.Kind == block.KindRepeat && !alt:
		times := max(p.Times+int(dir), 0)
		patch.Times = &times
	}
	if patch.Empty() {
		return
	}
	m.check(m.engine.UpdateBlock("", b.ID, patch))
}

func (m *EditorModel) check(err error) {
	if err != nil {
		m.err = err
	}
}

// refresh pulls the latest snapshot and retargets glides.
func (m *EditorModel) refresh() {
	m.state = m.engine.Snapshot()
	m.animator.Sync(m.state)
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *EditorModel) rows() []row {
	a, ok := m.state.ActiveActor()
	if !ok {
		return nil
	}
	return flatten(a.Blocks)
}

func (m *EditorModel) nextActor() string {
	actors := m.state.Actors
	for i, a := range actors {
		if a.ID == m.state.ActiveActorID {
			return actors[(i+1)%len(actors)].ID
		}
	}
	if len(actors) > 0 {
		return actors[0].ID
	}
	return ""
}

// View renders the editor.
func (m *EditorModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(errors.FormatByCategory(m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}
	if m.editing {
		sections = append(sections, StyleSubtitle.Render("text: ")+m.input+"▏")
	}

	stage := (&StagePanel{
		State:   m.animator.Apply(m.state),
		Grid:    m.grid,
		Running: m.state.IsRunning,
		Elapsed: m.clock.Now().Sub(m.runStart),
	}).View()
	blocks := &BlocksPanel{
		Forest: m.activeForest(),
		Cursor: m.cursor,
		Nest:   m.nest,
		Width:  m.width - lipgloss.Width(stage) - 1,
	}
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, stage, " ", blocks.View()),
		(&SpriteBar{State: m.state, Now: m.clock.Now()}).View(),
	)

	if m.lastRun != nil {
		sections = append(sections, StyleSubtitle.Render(fmt.Sprintf(
			"last run: %s, %d steps, %d swaps, %d collisions, %s",
			m.lastRun.Status, m.lastRun.Steps, m.lastRun.Swaps, m.lastRun.Collisions,
			output.FormatElapsed(m.lastRun.Duration()),
		)))
	}

	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *EditorModel) activeForest() block.Forest {
	if a, ok := m.state.ActiveActor(); ok {
		return a.Blocks
	}
	return nil
}

// renderHeader renders the editor header.
func (m *EditorModel) renderHeader() string {
	title := StyleTitle.Render("blockstage")
	sprite := ""
	if a, ok := m.state.ActiveActor(); ok {
		sprite = StyleSubtitle.Render("editing " + a.Name)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", sprite)
}

// setMessage sets a temporary message.
func (m *EditorModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.clock.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *EditorModel) tickCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runCmd runs the active sprite's program off the UI goroutine.
func (m *EditorModel) runCmd() tea.Cmd {
	return func() tea.Msg {
		rec, err := m.engine.Run(m.ctx)
		return runDoneMsg{rec: rec, err: err}
	}
}

// Run starts the editor TUI. The caller registers Sink on its notice
// dispatcher through register before the program starts.
func Run(config EditorConfig, register func(notify.Sink)) error {
	m := NewEditorModel(config)
	if register != nil {
		register(m.Sink())
	}
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
