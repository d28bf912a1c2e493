package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/output"
	"github.com/manav03panchal/blockstage/internal/store"
	"github.com/manav03panchal/blockstage/internal/timer"
)

// row is one block of a flattened program with its nesting depth.
type row struct {
	Block block.Block
	Depth int
}

// flatten lists blocks depth first, in display order.
func flatten(forest block.Forest) []row {
	var rows []row
	var walk func(block.Forest, int)
	walk = func(f block.Forest, depth int) {
		for _, b := range f {
			rows = append(rows, row{Block: b, Depth: depth})
			walk(b.Children, depth+1)
		}
	}
	walk(forest, 0)
	return rows
}

// StagePanel draws the stage.
type StagePanel struct {
	State   store.State
	Grid    output.Grid
	Running bool
	Elapsed time.Duration
}

// View renders the stage panel.
func (sp *StagePanel) View() string {
	badge := StyleIdle.Render("○ idle")
	box := StyleStageBox
	if sp.Running {
		badge = StyleRunning.Render("● running " + timer.FormatDuration(sp.Elapsed))
		box = StyleRunningStageBox
	}
	body := strings.TrimRight(output.RenderStage(sp.State, sp.Grid), "\n")
	return box.Render(badge + "\n" + body)
}

// BlocksPanel lists the active sprite's program.
type BlocksPanel struct {
	Forest block.Forest
	Cursor int
	Nest   bool
	Width  int
}

// View renders the program panel.
func (bp *BlocksPanel) View() string {
	var content strings.Builder
	title := "Program"
	if bp.Nest {
		title += StyleWarning.Render("  [adding into repeat]")
	}
	content.WriteString(StyleTitle.Render(title))
	content.WriteString("\n")

	rows := flatten(bp.Forest)
	if len(rows) == 0 {
		content.WriteString(StyleSubtitle.Render("No blocks yet. Press m, t, g, s, k or r to add one."))
	}
	for i, r := range rows {
		line := strings.Repeat("  ", r.Depth) + output.Describe(r.Block)
		style := CategoryStyle(r.Block.Kind.Category())
		if i == bp.Cursor {
			style = style.Inherit(StyleCursor)
		}
		content.WriteString(style.Render(line))
		if i < len(rows)-1 {
			content.WriteString("\n")
		}
	}

	box := StyleBlocksBox
	if bp.Width > 4 {
		box = box.Width(bp.Width - 4)
	}
	return box.Render(content.String())
}

// SpriteBar lists sprites, marks the active one and shows bubble countdowns.
type SpriteBar struct {
	State store.State
	Now   time.Time
}

// View renders the sprite bar.
func (sb *SpriteBar) View() string {
	var parts []string
	for _, a := range sb.State.Actors {
		label := fmt.Sprintf("%s %s", a.Costume, a.Name)
		if a.ID == sb.State.ActiveActorID {
			parts = append(parts, StyleActiveSprite.Render("▸ "+label))
		} else {
			parts = append(parts, StyleSprite.Render("  "+label))
		}
	}
	bar := strings.Join(parts, "  ")

	var bubbles []string
	for _, a := range sb.State.Actors {
		if a.Message == nil {
			continue
		}
		bubbles = append(bubbles, fmt.Sprintf("%s %s %s",
			output.Bubble(a),
			ProgressBar(remainingPercent(a.Message, sb.Now), 10),
			StyleSubtitle.Render(timer.FormatRemaining(sb.Now, a.Message.ExpiresAt)),
		))
	}
	if len(bubbles) == 0 {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, strings.Join(bubbles, "\n"))
}

// remainingPercent is the share of the message's display time still left.
func remainingPercent(m *store.Message, now time.Time) float64 {
	if m.ExpiresAt.IsZero() || m.Duration <= 0 {
		return 0
	}
	left := m.ExpiresAt.Sub(now)
	return 100 * float64(left) / float64(m.Duration)
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"m/t/g", "move/turn/goto"},
		{"s/k", "say/think"},
		{"r", "repeat"},
		{"i", "into repeat"},
		{"+/-", "adjust"},
		{"</>", "adjust y/secs"},
		{"e", "edit text"},
		{"x", "delete"},
		{"c", "clear"},
		{"n/d", "add/remove sprite"},
		{"tab", "next sprite"},
		{"enter", "run"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
