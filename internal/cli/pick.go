package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StyleListModel - Interactive style selection
// =============================================================================

// StyleListModel is the bubbletea model for interactive style selection.
type StyleListModel struct {
	Styles     []style.Descriptor
	DefaultKey string
	Title      string
	Cursor     int
	Selected   *style.Descriptor
}

// NewStyleListModel creates a style list with the cursor on the default style.
func NewStyleListModel(reg *style.Registry, title string) StyleListModel {
	m := StyleListModel{
		Styles:     reg.Descriptors(),
		DefaultKey: reg.DefaultKey(),
		Title:      title,
	}
	for i, d := range m.Styles {
		if d.Key == m.DefaultKey {
			m.Cursor = i
		}
	}
	return m
}

func (m StyleListModel) Init() tea.Cmd {
	return nil
}

func (m StyleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Styles)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Styles) == 0 {
				return m, nil
			}
			d := m.Styles[m.Cursor]
			m.Selected = &d
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StyleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Style"))
	if m.Title != "" {
		b.WriteString(" " + StyleDim.Render("for "+m.Title))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, d := range m.Styles {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if d.Key == m.DefaultKey {
			mark = StyleSuccess.Render("*")
		}

		line := fmt.Sprintf("%s%-5s %-22s %s", cursor, d.Key, d.Name, listDimStyle.Render(d.Mode.String()+" · "+fillSummary(d.Fill)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString(" " + mark + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  * default", m.Cursor+1, len(m.Styles))))

	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// pickCommand creates the pick command.
func (c *CLI) pickCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "pick [title]",
		Short: "Choose a style interactively, then render",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.title = args[0]
			}
			if strings.TrimSpace(opts.title) == "" {
				return errors.New(errors.ErrCodeInvalidTitle, "a title is required (argument or --title)")
			}
			return c.runPick(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "episode title")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.altText, "alt-text", false, "write the alt text to <output>.txt")

	return cmd
}

func (c *CLI) runPick(ctx context.Context, opts renderOpts) error {
	reg, err := c.loadRegistry()
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewStyleListModel(reg, opts.title), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("style picker: %w", err)
	}
	m, ok := final.(StyleListModel)
	if !ok || m.Selected == nil {
		printInfo("No style selected")
		return nil
	}

	opts.style = m.Selected.Key
	return c.runRender(ctx, opts)
}
