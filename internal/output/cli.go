package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/model"
	"github.com/manav03panchal/blockstage/internal/notify"
	"github.com/manav03panchal/blockstage/internal/store"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMotion  = lipgloss.Color("#3B82F6") // Blue
	colorLooks   = lipgloss.Color("#A855F7") // Violet
	colorControl = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleActor = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)
)

// CategoryColor returns the toolbar color for a block category.
func CategoryColor(c block.Category) lipgloss.Color {
	switch c {
	case block.CategoryLooks:
		return colorLooks
	case block.CategoryControl:
		return colorControl
	default:
		return colorMotion
	}
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// ActorName formats an actor name.
func (c *CLIFormatter) ActorName(name string) string {
	return c.render(styleActor, name)
}

// PrintNotice prints a notice according to its level.
func (c *CLIFormatter) PrintNotice(n notify.Notice) {
	switch n.Level {
	case notify.LevelSuccess:
		c.Success(n.String())
	case notify.LevelWarning:
		c.Warning(n.String())
	case notify.LevelError:
		c.Error(n.String())
	default:
		c.Println("• " + n.String())
	}
}

// Describe renders a block the way the editor labels it.
func Describe(b block.Block) string {
	p := b.Params
	switch b.Kind {
	case block.KindMove:
		return fmt.Sprintf("move %g steps", p.Steps)
	case block.KindTurn:
		return fmt.Sprintf("turn %g degrees", p.Degrees)
	case block.KindGoto:
		return fmt.Sprintf("go to x: %g y: %g", p.X, p.Y)
	case block.KindSay:
		return fmt.Sprintf("say %q for %g seconds", p.Text, p.Seconds)
	case block.KindThink:
		return fmt.Sprintf("think %q for %g seconds", p.Text, p.Seconds)
	case block.KindRepeat:
		return fmt.Sprintf("repeat %d times", p.Times)
	default:
		return string(b.Kind)
	}
}

// BlockLines renders a forest as indented lines, two spaces per level.
func BlockLines(forest block.Forest) []string {
	var lines []string
	var walk func(block.Forest, int)
	walk = func(f block.Forest, depth int) {
		for _, b := range f {
			lines = append(lines, strings.Repeat("  ", depth)+Describe(b))
			if b.IsRepeat() {
				walk(b.Children, depth+1)
			}
		}
	}
	walk(forest, 0)
	return lines
}

// PrintBlocks prints an actor's program.
func (c *CLIFormatter) PrintBlocks(forest block.Forest) {
	if len(forest) == 0 {
		c.Muted("  (no blocks)")
		return
	}
	var walk func(block.Forest, int)
	walk = func(f block.Forest, depth int) {
		for _, b := range f {
			style := lipgloss.NewStyle().Foreground(CategoryColor(b.Kind.Category()))
			c.Println(strings.Repeat("  ", depth+1) + c.render(style, Describe(b)))
			if b.IsRepeat() {
				walk(b.Children, depth+1)
			}
		}
	}
	walk(forest, 0)
}

// PrintStage prints the stage grid and message bubbles.
func (c *CLIFormatter) PrintStage(s store.State, g Grid) {
	c.Print(RenderStage(s, g))
}

// PrintSprites prints the sprite list, marking the active sprite.
func (c *CLIFormatter) PrintSprites(s store.State) {
	rows := make([]TableRow, 0, len(s.Actors))
	for _, a := range s.Actors {
		marker := " "
		if a.ID == s.ActiveActorID {
			marker = "*"
		}
		rows = append(rows, TableRow{Columns: []string{
			marker + " " + a.ID,
			a.Costume + " " + a.Name,
			fmt.Sprintf("%.1f", a.X),
			fmt.Sprintf("%.1f", a.Y),
			fmt.Sprintf("%.0f°", a.Direction),
			fmt.Sprintf("%d", block.Count(a.Blocks)),
		}})
	}
	c.PrintTable([]string{"ID", "SPRITE", "X", "Y", "DIR", "BLOCKS"}, rows)
}

// PrintRunSummary prints the outcome of a run.
func (c *CLIFormatter) PrintRunSummary(r *model.RunRecord) {
	if r.Succeeded() {
		c.Printf("Ran %s: %d blocks in %s\n", c.ActorName(r.ActorName), r.Steps, FormatElapsed(r.Duration()))
	} else {
		c.Printf("Run of %s failed after %d blocks: %s\n", c.ActorName(r.ActorName), r.Steps, r.Error)
	}
	c.Printf("  Final position: (%.1f, %.1f) facing %.0f°\n", r.FinalX, r.FinalY, r.FinalDirection)
	if r.Swaps+r.Collisions > 0 {
		c.Printf("  Swaps: %d pre-flight, %d collisions\n", r.Swaps, r.Collisions)
	}
}

// PrintHistory prints recorded runs.
func (c *CLIFormatter) PrintHistory(runs []*model.RunRecord) {
	if len(runs) == 0 {
		c.Muted("No runs recorded yet.")
		c.Muted("Use 'blockstage run' to run a program.")
		return
	}
	rows := make([]TableRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, TableRow{Columns: []string{
			FormatTime(r.StartedAt),
			r.ActorName,
			string(r.Status),
			fmt.Sprintf("%d/%d", r.Steps, r.BlockCount),
			fmt.Sprintf("%d", r.Swaps+r.Collisions),
			FormatElapsed(r.Duration()),
		}})
	}
	c.PrintTable([]string{"STARTED", "SPRITE", "STATUS", "STEPS/BLOCKS", "SWAPS", "TOOK"}, rows)
}

// PrintKinds prints every block kind with its defaults.
func (c *CLIFormatter) PrintKinds() {
	rows := make([]TableRow, 0, len(block.Kinds()))
	for _, k := range block.Kinds() {
		rows = append(rows, TableRow{Columns: []string{
			string(k),
			string(k.Category()),
			Describe(block.Block{Kind: k, Params: block.Defaults(k)}),
		}})
	}
	c.PrintTable([]string{"KIND", "CATEGORY", "DEFAULT"}, rows)
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(strings.TrimRight(c.render(styleBold, headerLine.String()), " "))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
