package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwall/pkg/core/classify"
	"github.com/matzehuels/stepwall/pkg/core/grid"
	"github.com/matzehuels/stepwall/pkg/errors"
)

const (
	glyphDay    = "●"
	glyphCursor = "◉"
	cellChars   = 2 // terminal columns per day
)

var (
	previewStyles = map[classify.State]lipgloss.Style{
		classify.Met:    lipgloss.NewStyle().Foreground(colorWhite),
		classify.Missed: lipgloss.NewStyle().Foreground(colorRed),
		classify.Future: lipgloss.NewStyle().Foreground(colorDim),
		classify.Today:  lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	}
	previewCursorStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// previewKeys is the key map of the preview. It implements help.KeyMap.
type previewKeys struct {
	Left, Right, Up, Down key.Binding
	First, Today, Quit    key.Binding
}

func newPreviewKeys() previewKeys {
	return previewKeys{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "day 1")),
		Today: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "today")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.First, k.Today, k.Quit}
}

func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Up, k.Down}, {k.First, k.Today, k.Quit}}
}

// =============================================================================
// PreviewModel - interactive year grid
// =============================================================================

// PreviewModel is the bubbletea model of `stepwall preview`. It draws the
// wallpaper grid with one glyph per day and lets the user step through days.
type PreviewModel struct {
	Rows   []grid.RowSpec
	States []classify.State
	Record []int
	Goal   int
	Stats  classify.Stats
	Cursor int

	starts []int // first day index of each row
	keys   previewKeys
	help   help.Model
	year   progress.Model
}

// NewPreviewModel creates a model for record under the given grid. The
// cursor starts on today, or on day 1 when the record is empty.
func NewPreviewModel(cfg grid.Config, record []int, goal int) PreviewModel {
	m := PreviewModel{
		Rows:   grid.Rows(cfg),
		States: classify.Classify(record, goal),
		Record: record,
		Goal:   goal,
		Stats:  classify.ComputeStats(record, goal),
		Cursor: max(len(record)-1, 0),
		keys:   newPreviewKeys(),
		help:   help.New(),
		year:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
	day := 0
	m.starts = make([]int, len(m.Rows))
	for i, r := range m.Rows {
		m.starts[i] = day
		day += r.Columns
	}
	m.Cursor = min(m.Cursor, m.days()-1)
	return m
}

func (m PreviewModel) days() int {
	return min(len(m.States), m.totalCells())
}

func (m PreviewModel) totalCells() int {
	n := 0
	for _, r := range m.Rows {
		n += r.Columns
	}
	return n
}

// locate returns the row and column of day.
func (m PreviewModel) locate(day int) (row, col int) {
	for i := len(m.starts) - 1; i >= 0; i-- {
		if day >= m.starts[i] {
			return i, day - m.starts[i]
		}
	}
	return 0, 0
}

// vertical moves the cursor by dr rows, keeping its horizontal position as
// close as the target row allows.
func (m PreviewModel) vertical(dr int) int {
	row, col := m.locate(m.Cursor)
	target := row + dr
	if target < 0 || target >= len(m.Rows) {
		return m.Cursor
	}
	x := m.Rows[row].Offset + float64(col)
	c := int(math.Round(x - m.Rows[target].Offset))
	c = min(max(c, 0), m.Rows[target].Columns-1)
	return min(m.starts[target]+c, m.days()-1)
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.Cursor = max(m.Cursor-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.Cursor = min(m.Cursor+1, m.days()-1)
		case key.Matches(msg, m.keys.Up):
			m.Cursor = m.vertical(-1)
		case key.Matches(msg, m.keys.Down):
			m.Cursor = m.vertical(1)
		case key.Matches(msg, m.keys.First):
			m.Cursor = 0
		case key.Matches(msg, m.keys.Today):
			m.Cursor = max(len(m.Record)-1, 0)
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Step wall"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  goal %d", m.Goal)))
	b.WriteString("\n\n")
	b.WriteString(m.grid(true))
	b.WriteString("\n")
	b.WriteString(m.dayInfo())
	b.WriteString("\n\n")
	b.WriteString(m.legend())
	b.WriteString("\n")
	b.WriteString(StyleValue.Render(m.Stats.Summary()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("year "))
	b.WriteString(m.year.ViewAs(float64(min(len(m.Record), grid.DaysInYear)) / grid.DaysInYear))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// grid draws every row, indented by its offset. The cursor is only marked
// when withCursor is set.
func (m PreviewModel) grid(withCursor bool) string {
	var b strings.Builder
	for i, r := range m.Rows {
		b.WriteString(strings.Repeat(" ", int(math.Round(r.Offset*cellChars))))
		for c := 0; c < r.Columns; c++ {
			day := m.starts[i] + c
			if day >= len(m.States) {
				break
			}
			glyph, style := glyphDay, previewStyles[m.States[day]]
			if withCursor && day == m.Cursor {
				glyph, style = glyphCursor, previewCursorStyle
			}
			b.WriteString(style.Render(glyph))
			b.WriteString(strings.Repeat(" ", cellChars-runewidth.StringWidth(glyph)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// dayInfo describes the day under the cursor.
func (m PreviewModel) dayInfo() string {
	day := m.Cursor
	state := m.States[day]
	label := StyleNumber.Render(fmt.Sprintf("Day %d", day+1))
	if day >= len(m.Record) {
		return label + StyleDim.Render(" · no data yet")
	}
	return label + StyleDim.Render(fmt.Sprintf(" · %d steps · ", m.Record[day])) + previewStyles[state].Render(state.String())
}

// legend lists each state with its glyph and count, columns aligned by
// display width.
func (m PreviewModel) legend() string {
	counts := classify.Count(m.States)
	entries := []struct {
		state classify.State
		label string
		n     int
	}{
		{classify.Met, "goal met", counts.Met},
		{classify.Missed, "goal missed", counts.Missed},
		{classify.Today, "today", counts.Today},
		{classify.Future, "to come", counts.Future},
	}

	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.label))
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(previewStyles[e.state].Render(glyphDay))
		b.WriteString(" ")
		b.WriteString(StyleDim.Render(runewidth.FillRight(e.label, width)))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(fmt.Sprintf("%3d", e.n)))
		b.WriteString("\n")
	}
	return b.String()
}

// Static renders the grid, legend and summary without interactive parts.
func (m PreviewModel) Static() string {
	return m.grid(false) + "\n" + m.legend() + StyleValue.Render(m.Stats.Summary()) + "\n"
}

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		data, dataFile string
		goal           int
		static         bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a record as a grid in the terminal",
		Long: `Show a record as a grid in the terminal, laid out like the wallpaper.

The preview is interactive when stdout is a terminal. Use --static to print
the grid once instead.`,
		Example: `  stepwall preview --data 8500,12000,9500
  stepwall preview --data-file steps.txt --goal 8000 --static`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if goal == 0 {
				goal = cfg.Goal
			}
			if err := errors.ValidateGoal(goal); err != nil {
				return err
			}
			record, err := readRecord(cmd.InOrStdin(), data, dataFile)
			if err != nil {
				return err
			}
			if err := errors.ValidateRecord(record, grid.DaysInYear); err != nil {
				return err
			}

			m := NewPreviewModel(cfg.Pipeline.Grid, record, goal)
			if static || !isTerminal(c.Out) {
				_, err := fmt.Fprint(c.Out, m.Static())
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(c.Out)).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "comma-separated daily step counts")
	cmd.Flags().StringVar(&dataFile, "data-file", "", "file with daily step counts, - for stdin")
	cmd.Flags().IntVarP(&goal, "goal", "g", 0, "daily step goal (default from config)")
	cmd.Flags().BoolVar(&static, "static", false, "print the grid once and exit")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")

	return cmd
}
