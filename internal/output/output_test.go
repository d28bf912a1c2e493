package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/model"
	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/store"
)

func plainCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewCLIFormatter(&Formatter{Writer: &buf, Format: FormatCLI, ColorMode: ColorNever}), &buf
}

func sampleRun() *model.RunRecord {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.RunRecord{
		Key:            "run:1",
		RunID:          "abc",
		ActorID:        "sprite1",
		ActorName:      "Cat",
		BlockCount:     3,
		Status:         model.RunDone,
		Steps:          3,
		Swaps:          1,
		Collisions:     1,
		StartedAt:      start,
		FinishedAt:     start.Add(300 * time.Millisecond),
		FinalY:         10,
		FinalDirection: 90,
	}
}

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("plain_disables_color", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways, Format: FormatPlain}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{Writer: &buf, ColorMode: ColorAuto}
		assert.False(t, f.IsColorEnabled())
		assert.False(t, f.IsTerminal())
	})
}

func TestFormatterWidthFallback(t *testing.T) {
	f := &Formatter{Writer: &bytes.Buffer{}}
	assert.Equal(t, DefaultWidth, f.Width())
}

func TestFormatterPrinting(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("a")
	f.Println("b")
	f.Printf("%d", 3)
	assert.Equal(t, "ab\n3", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	require.NoError(t, f.JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "300ms", FormatElapsed(300*time.Millisecond))
	assert.Equal(t, "2.5s", FormatElapsed(2500*time.Millisecond))
	assert.Equal(t, "0ms", FormatElapsed(0))
}

// =============================================================================
// Stage Tests
// =============================================================================

func TestNewGrid(t *testing.T) {
	g := NewGrid(48, 480, 360)
	assert.Equal(t, 48, g.Cols)
	assert.Equal(t, 18, g.Rows)

	small := NewGrid(2, 480, 360)
	assert.Equal(t, 8, small.Cols)
	assert.Equal(t, 4, small.Rows)
}

func TestGridProject(t *testing.T) {
	g := Grid{Cols: 11, Rows: 5, Width: 100, Height: 40}

	tests := []struct {
		name     string
		x, y     float64
		col, row int
		ok       bool
	}{
		{"origin", 0, 0, 5, 2, true},
		{"top_left", -50, 20, 0, 0, true},
		{"bottom_right", 50, -20, 10, 4, true},
		{"right_of_stage", 500, 0, 10, 2, false},
		{"below_stage", 0, -100, 5, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row, ok := g.Project(tt.x, tt.y)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, 'C', Glyph(store.Actor{Name: "cat"}))
	assert.Equal(t, '@', Glyph(store.Actor{Name: ""}))
	assert.Equal(t, '@', Glyph(store.Actor{Name: "9lives"}))
}

func TestRenderStage(t *testing.T) {
	s := store.DefaultState()
	dog := store.NewActor("sprite2", "Dog", "🐶")
	dog.X, dog.Y = -50, 20
	dog.Message = &store.Message{Kind: store.MessageSay, Text: "Woof"}
	ghost := store.NewActor("sprite3", "Ghost", "👻")
	ghost.Visible = false
	ghost.X = 50
	s.Actors = append(s.Actors, dog, ghost)

	out := RenderStage(s, Grid{Cols: 11, Rows: 5, Width: 100, Height: 40})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Equal(t, "┌───────────┐", lines[0])
	assert.Equal(t, "│D    ·     │", lines[1])
	assert.Equal(t, "│·····C·····│", lines[3])
	assert.Equal(t, "└───────────┘", lines[6])
	assert.NotContains(t, out, "G")
	assert.Equal(t, "D Dog says « Woof »", lines[7])
}

func TestBubble(t *testing.T) {
	a := store.NewActor("sprite1", "Cat", "🐱")
	assert.Equal(t, "", Bubble(a))

	a.Message = &store.Message{Kind: store.MessageThink, Text: "Hmm..."}
	assert.Equal(t, "C Cat thinks ( Hmm... )", Bubble(a))
}

// =============================================================================
// CLI Tests
// =============================================================================

func TestCLIMessages(t *testing.T) {
	c, buf := plainCLI()

	c.Title("Stage")
	c.Success("done")
	c.Warning("careful")
	c.Error("broken")
	c.Muted("quiet")

	assert.Equal(t, "Stage\n✓ done\n⚠ careful\n✗ broken\nquiet\n", buf.String())
}

func TestPrintNotice(t *testing.T) {
	c, buf := plainCLI()

	c.PrintNotice(notify.New(notify.LevelSuccess, "Animation complete!", ""))
	c.PrintNotice(notify.New(notify.LevelInfo, "Cat collided with Dog! Animations swapped!", ""))
	c.PrintNotice(notify.New(notify.LevelError, "Error running animation", "boom"))
	c.PrintNotice(notify.New(notify.LevelWarning, "No blocks to run!", ""))

	assert.Equal(t, "✓ Animation complete!\n"+
		"• Cat collided with Dog! Animations swapped!\n"+
		"✗ Error running animation boom\n"+
		"⚠ No blocks to run!\n", buf.String())
}

func TestDescribeAndBlockLines(t *testing.T) {
	forest := block.Forest{
		block.NewRepeat(3, block.New(block.KindMove), block.New(block.KindSay)),
		block.New(block.KindGoto),
		block.New(block.KindThink),
		block.New(block.KindTurn),
	}

	assert.Equal(t, []string{
		"repeat 3 times",
		"  move 10 steps",
		`  say "Hello!" for 2 seconds`,
		"go to x: 0 y: 0",
		`think "Hmm..." for 2 seconds`,
		"turn 15 degrees",
	}, BlockLines(forest))
	assert.Equal(t, "dance", Describe(block.Block{Kind: "dance"}))
}

func TestPrintBlocks(t *testing.T) {
	c, buf := plainCLI()
	c.PrintBlocks(nil)
	assert.Equal(t, "  (no blocks)\n", buf.String())

	buf.Reset()
	c.PrintBlocks(block.Forest{block.NewRepeat(2, block.New(block.KindTurn))})
	assert.Equal(t, "  repeat 2 times\n    turn 15 degrees\n", buf.String())
}

func TestPrintSprites(t *testing.T) {
	c, buf := plainCLI()
	s := store.DefaultState()
	s.Actors = append(s.Actors, store.NewActor("sprite2", "Dog", "🐶"))

	c.PrintSprites(s)
	out := buf.String()
	assert.Contains(t, out, "* sprite1")
	assert.Contains(t, out, "  sprite2")
	assert.Contains(t, out, "Cat")
	assert.Contains(t, out, "90°")
}

func TestPrintRunSummary(t *testing.T) {
	c, buf := plainCLI()
	c.PrintRunSummary(sampleRun())
	out := buf.String()
	assert.Contains(t, out, "Ran Cat: 3 blocks in 300ms")
	assert.Contains(t, out, "Final position: (0.0, 10.0) facing 90°")
	assert.Contains(t, out, "Swaps: 1 pre-flight, 1 collisions")

	buf.Reset()
	failed := sampleRun()
	failed.Status = model.RunFailed
	failed.Error = "context canceled"
	c.PrintRunSummary(failed)
	assert.Contains(t, buf.String(), "failed after 3 blocks: context canceled")
}

func TestPrintHistory(t *testing.T) {
	c, buf := plainCLI()
	c.PrintHistory(nil)
	assert.Contains(t, buf.String(), "No runs recorded yet.")

	buf.Reset()
	c.PrintHistory([]*model.RunRecord{sampleRun()})
	out := buf.String()
	assert.Contains(t, out, "STARTED")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "3/3")
}

func TestPrintKinds(t *testing.T) {
	c, buf := plainCLI()
	c.PrintKinds()
	out := buf.String()
	for _, k := range block.Kinds() {
		assert.Contains(t, out, string(k))
	}
	assert.Contains(t, out, "repeat 10 times")
}

func TestPrintTableEmpty(t *testing.T) {
	c, buf := plainCLI()
	c.PrintTable([]string{"A"}, nil)
	assert.Empty(t, buf.String())
}

func TestPrintTableAlignsWideRunes(t *testing.T) {
	c, buf := plainCLI()
	c.PrintTable([]string{"A", "B"}, []TableRow{{Columns: []string{"🐱 Cat", "x"}}})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A       B", lines[0])
	assert.Equal(t, "🐱 Cat  x", lines[2])
}

// =============================================================================
// JSON Tests
// =============================================================================

func TestJSONPrintRun(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf, Format: FormatJSON})

	s := store.DefaultState()
	s.Actors[0].Blocks = block.Forest{block.New(block.KindMove)}
	require.NoError(t, j.PrintRun(sampleRun(), s, nil))

	var resp RunResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "done", resp.Status)
	assert.Equal(t, int64(300), resp.Run.DurationMillis)
	assert.Equal(t, 10.0, resp.Run.FinalY)
	require.Len(t, resp.Sprites, 1)
	assert.True(t, resp.Sprites[0].Active)
	assert.Equal(t, []string{"move 10 steps"}, resp.Sprites[0].Program)
	assert.Equal(t, []string{}, resp.Notices)
}

func TestJSONPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	require.NoError(t, j.PrintHistory([]*model.RunRecord{sampleRun(), sampleRun()}))

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Cat", resp.Runs[0].ActorName)
}

func TestJSONPrintKinds(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	require.NoError(t, j.PrintKinds())

	var kinds []KindOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &kinds))
	require.Len(t, kinds, len(block.Kinds()))
	assert.Equal(t, "move", kinds[0].Kind)
	assert.Equal(t, 10.0, kinds[0].Defaults.Steps)
}

func TestJSONPrintError(t *testing.T) {
	var buf bytes.Buffer
	j := NewJSONFormatter(&Formatter{Writer: &buf})

	require.NoError(t, j.PrintError("no blocks to run", "", "Add blocks first"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Add blocks first", resp.Suggestion)
}
