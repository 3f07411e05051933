package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/titlecard/pkg/errors"
	"github.com/matzehuels/titlecard/pkg/style"
)

// stylesCommand creates the styles command.
func (c *CLI) stylesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Inspect the style table",
	}

	cmd.AddCommand(c.stylesListCommand())
	cmd.AddCommand(c.stylesShowCommand())

	return cmd
}

// stylesListCommand creates the "styles list" subcommand.
func (c *CLI) stylesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the registered styles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			fmt.Println(stylesTable(reg))
			return nil
		},
	}
}

// stylesShowCommand creates the "styles show" subcommand.
func (c *CLI) stylesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [key]",
		Short: "Show one style in detail",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return c.completeStyles(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.loadRegistry()
			if err != nil {
				return err
			}
			d, ok := reg.Lookup(args[0])
			if !ok {
				return errors.New(errors.ErrCodeResourceNotFound, "style %q not found (have %s)", args[0], strings.Join(reg.Keys(), ", "))
			}
			printStyle(d, d.Key == reg.DefaultKey())
			return nil
		},
	}
}

// stylesTable renders the registry as a table, default style marked.
func stylesTable(reg *style.Registry) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	descs := reg.Descriptors()

	rows := make([][]string, 0, len(descs))
	for _, d := range descs {
		mark := ""
		if d.Key == reg.DefaultKey() {
			mark = "*"
		}
		rows = append(rows, []string{mark, d.Key, d.Name, d.Mode.String(), fillSummary(d.Fill), fmt.Sprint(d.Size), d.Anchor.Point.String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Key", "Name", "Mode", "Color", "Size", "Anchor").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleHighlight
			}
			if col == 0 {
				return StyleSuccess
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func printStyle(d style.Descriptor, isDefault bool) {
	title := d.Key
	if d.Name != "" && d.Name != d.Key {
		title += " " + StyleDim.Render(d.Name)
	}
	fmt.Println(StyleTitle.Render(title))
	printKeyValue("Mode", d.Mode.String())
	printKeyValue("Font", d.Font)
	printKeyValue("Background", d.Background)
	printKeyValue("Color", fillSummary(d.Fill))
	printKeyValue("Size", fmt.Sprintf("%dpt", d.Size))
	printKeyValue("Position", fmt.Sprintf("%.2f, %.2f (%s, %s)", d.Anchor.X, d.Anchor.Y, d.Anchor.Point, d.Anchor.Align))
	printKeyValue("Wrap", fmt.Sprintf("%d chars", d.Wrap))
	printKeyValue("Transform", transformSummary(d.Transform))
	if d.Shadow.Enabled {
		printKeyValue("Shadow", fmt.Sprintf("%s %+d,%+d", style.FormatColor(d.Shadow.Color), d.Shadow.DX, d.Shadow.DY))
	}
	if len(d.Shrink) > 0 {
		steps := make([]string, len(d.Shrink))
		for i, s := range d.Shrink {
			steps[i] = fmt.Sprintf(">%d: x%g", s.Over, s.Scale)
		}
		printKeyValue("Shrink", strings.Join(steps, ", "))
	}
	if d.Mode == style.ModeStaggered {
		printKeyValue("Stagger", fmt.Sprintf("%dpx", d.StaggerStep))
	}
	printKeyValue("Line gap", fmt.Sprintf("%dpx", d.LineGap))
	if isDefault {
		printDetail("default style")
	}
}

func fillSummary(f style.Fill) string {
	switch f.Kind {
	case style.FillSolid:
		return style.FormatColor(f.Color)
	case style.FillGradient:
		return style.FormatColor(f.Top) + " → " + style.FormatColor(f.Bottom)
	}
	return "none"
}

func transformSummary(t style.Transform) string {
	var parts []string
	if t.Quote {
		parts = append(parts, "quote")
	}
	if t.Uppercase {
		parts = append(parts, "uppercase")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
