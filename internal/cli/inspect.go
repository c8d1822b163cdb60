package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilewire/pkg/core/connection"
	"github.com/matzehuels/tilewire/pkg/graph"
	"github.com/matzehuels/tilewire/pkg/pipeline"
)

// moveStep is how far one H/J/K/L key press moves a tile.
const moveStep = 10

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the interactive connection browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [diagram.json]",
		Short: "Browse and edit the connections of a diagram interactively",
		Long: `Browse and edit the connections of a diagram interactively.

Keys:
  up/down   choose a connection
  space     toggle selection
  H/J/K/L   move the origin tile of the connection left/down/up/right
  enter     show or hide the waypoints
  w         save the diagram with the moved tiles
  q         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], output, c.options(cmd, &flags), flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file written by w (default: <input>.edited.<ext>)")
	flags.registerRoute(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	d, err := graph.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	laid, err := runner.Layout(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	board, err := pipeline.NewBoard(ctx, laid, opts)
	if err != nil {
		return fmt.Errorf("route: %w", err)
	}
	if len(board.Manager.Connections()) == 0 {
		printWarning("No connection could be routed")
		return nil
	}

	if output == "" {
		output = basePath("", input) + ".edited" + filepath.Ext(input)
	}
	m := NewInspectModel(board, func(d graph.Diagram) error {
		return graph.WriteDiagramFile(d, output)
	})

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	if fm, ok := final.(InspectModel); ok && fm.Err != nil {
		return fm.Err
	}
	return nil
}

// =============================================================================
// InspectModel - Interactive connection browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a board's connections.
type InspectModel struct {
	Board      *pipeline.Board
	Cursor     int
	ShowPoints bool
	Status     string
	Err        error

	save func(graph.Diagram) error
}

// NewInspectModel creates a browser over board. save is called with the
// board's current diagram when the user presses w.
func NewInspectModel(board *pipeline.Board, save func(graph.Diagram) error) InspectModel {
	return InspectModel{Board: board, save: save}
}

func (m InspectModel) connections() []*connection.Connection {
	return m.Board.Manager.Connections()
}

// Current returns the connection under the cursor.
func (m InspectModel) Current() *connection.Connection {
	conns := m.connections()
	if m.Cursor < 0 || m.Cursor >= len(conns) {
		return nil
	}
	return conns[m.Cursor]
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.connections())-1 {
			m.Cursor++
		}
	case " ":
		if c := m.Current(); c != nil {
			c.ToggleSelected()
		}
	case "enter":
		m.ShowPoints = !m.ShowPoints
	case "H":
		m.move(-moveStep, 0)
	case "L":
		m.move(moveStep, 0)
	case "K":
		m.move(0, -moveStep)
	case "J":
		m.move(0, moveStep)
	case "w":
		if m.save == nil {
			break
		}
		if err := m.save(m.Board.Snapshot()); err != nil {
			m.Status = "save failed: " + err.Error()
			m.Err = err
		} else {
			m.Status = "saved"
			m.Err = nil
		}
	}
	return m, nil
}

func (m *InspectModel) move(dx, dy float64) {
	c := m.Current()
	if c == nil {
		return
	}
	t, ok := m.Board.Tiles[c.Origin().ID()]
	if !ok {
		return
	}
	if err := t.Move(dx, dy); err != nil {
		m.Status = err.Error()
		return
	}
	r := t.Rect()
	m.Status = fmt.Sprintf("moved %s to %g,%g", t.ID(), r.X, r.Y)
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Connections"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space select  H/J/K/L move  ⏎ waypoints  w save  q quit"))
	b.WriteString("\n\n")

	conns := m.connections()
	rows := make([][]string, 0, len(conns))
	for i, c := range conns {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		selected := ""
		if c.IsSelected() {
			selected = "✓"
		}
		rows = append(rows, []string{
			cursor,
			c.ID(),
			c.Origin().ID() + "." + c.OriginSide().String(),
			c.Destination().ID() + "." + c.DestinationSide().String(),
			c.Mode().String(),
			selected,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Connection", "From", "To", "Routing", "Selected").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row == m.Cursor {
				return listSelectedStyle
			}
			if row < len(conns) && conns[row].IsSelected() {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if c := m.Current(); c != nil && m.ShowPoints {
		b.WriteString("\n")
		b.WriteString(waypointTable(c).Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(conns))))
	if m.Status != "" {
		b.WriteString("  " + StyleHighlight.Render(m.Status))
	}
	return b.String()
}

func waypointTable(c *connection.Connection) *table.Table {
	pts := c.Waypoints()
	rows := make([][]string, len(pts))
	for i, p := range pts {
		rows[i] = []string{fmt.Sprint(i), fmt.Sprintf("%.1f", p.X), fmt.Sprintf("%.1f", p.Y)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}
