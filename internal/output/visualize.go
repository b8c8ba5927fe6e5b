package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/sway-cli/internal/tree"
)

// VisualizationOptions controls the appearance of the layout rendering
type VisualizationOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
	MaxHeight  int
}

// DefaultVisualizationOptions returns sensible defaults
func DefaultVisualizationOptions() VisualizationOptions {
	width, height := getTerminalSize()
	return VisualizationOptions{
		UseUnicode: supportsUnicode(),
		ShowIDs:    true,
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// VisualizeOutput renders the visible workspace of one output as boxes
// scaled into the terminal.
func VisualizeOutput(out *tree.Node, opts VisualizationOptions) string {
	header := fmt.Sprintf("Output %s [%dx%d] (workspace %s)\n",
		out.Name, out.Rect.Width, out.Rect.Height, out.CurrentWorkspace)

	var ws *tree.Node
	for _, w := range tree.WorkspacesOf(out) {
		if w.Name == out.CurrentWorkspace {
			ws = w
			break
		}
	}
	views := tree.ViewsOf(ws)
	if len(views) == 0 {
		return header + "(no views)\n"
	}

	canvas := NewCanvas(opts.MaxWidth, opts.MaxHeight, opts.UseUnicode)
	canvas.DrawBox(0, 0, opts.MaxWidth, opts.MaxHeight)

	for _, v := range views {
		x := scale(v.Rect.X-out.Rect.X, out.Rect.Width, opts.MaxWidth)
		y := scale(v.Rect.Y-out.Rect.Y, out.Rect.Height, opts.MaxHeight)
		w := scale(v.Rect.Width, out.Rect.Width, opts.MaxWidth)
		h := scale(v.Rect.Height, out.Rect.Height, opts.MaxHeight)

		if w < 3 || h < 2 {
			continue
		}
		canvas.DrawBox(x, y, w, h)

		label := viewLabel(v, opts.ShowIDs)
		if len(label) <= w-2 && h >= 2 {
			canvas.DrawText(x+1, y+1, truncate(label, w-2))
		}
	}

	footer := fmt.Sprintf("\nTotal: %d views\n", len(views))
	return header + canvas.String() + footer
}

// VisualizeSnapshot renders every output in the snapshot, stacked
// vertically.
func VisualizeSnapshot(snap *tree.Snapshot, opts VisualizationOptions) string {
	outputs := snap.Outputs()
	if len(outputs) == 0 {
		return "No outputs found\n"
	}

	var result strings.Builder
	for i, out := range outputs {
		result.WriteString(VisualizeOutput(out, opts))
		if i < len(outputs)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// PrintVisualization prints a colored layout rendering to stdout. An
// empty outputName renders every output.
func PrintVisualization(snap *tree.Snapshot, outputName string, opts VisualizationOptions) error {
	var result string
	if outputName == "" {
		result = VisualizeSnapshot(snap, opts)
	} else {
		out := snap.OutputByName(outputName)
		if out == nil {
			return fmt.Errorf("output %q not found", outputName)
		}
		result = VisualizeOutput(out, opts)
	}

	if color.NoColor {
		fmt.Print(result)
	} else {
		color.New(color.FgCyan).Print(result)
	}
	return nil
}

// viewLabel creates a label for a view box
func viewLabel(v *tree.Node, showID bool) string {
	app := v.AppID
	if app == "" {
		app = "?"
	}
	size := fmt.Sprintf("%dx%d", v.Rect.Width, v.Rect.Height)
	if showID {
		return fmt.Sprintf("[%d] %s (%s)", v.ID, app, size)
	}
	return fmt.Sprintf("%s (%s)", app, size)
}

// scale maps a span in output pixels onto the terminal span
func scale(v, srcSize, dstSize int) int {
	if srcSize <= 0 {
		return 0
	}
	return v * dstSize / srcSize
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")
	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}
