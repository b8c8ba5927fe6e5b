package output

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/sway-cli/internal/client"
	"github.com/yourusername/sway-cli/internal/tree"
)

// PrintViewsTable prints views in a table format
func PrintViewsTable(views []*tree.Node) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Title", "App", "PID", "Shell", "Size", "Focused")

	// Sort by ID
	sorted := make([]*tree.Node, len(views))
	copy(sorted, views)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	for _, v := range sorted {
		app := v.AppID
		if app == "" {
			app = "-"
		}
		pid := "-"
		if v.PID > 0 {
			pid = strconv.Itoa(v.PID)
		}
		focused := ""
		if v.Focused {
			focused = "*"
		}

		table.Append(
			strconv.FormatInt(v.ID, 10),
			truncate(v.Name, 30),
			truncate(app, 20),
			pid,
			v.Shell,
			fmt.Sprintf("%dx%d", v.Rect.Width, v.Rect.Height),
			focused,
		)
	}

	table.Render()
}

// PrintOutputsTable prints outputs in a table format
func PrintOutputsTable(outputs []client.OutputInfo) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Model", "Resolution", "Scale", "Active", "Workspace")

	for _, o := range outputs {
		active := ""
		if o.Active {
			active = "*"
		}
		scale := "-"
		if o.Scale > 0 {
			scale = fmt.Sprintf("%.1fx", o.Scale)
		}

		table.Append(
			o.Name,
			truncate(o.Make+" "+o.Model, 25),
			fmt.Sprintf("%dx%d", o.Rect.Width, o.Rect.Height),
			scale,
			active,
			o.CurrentWorkspace,
		)
	}

	table.Render()
}

// PrintWorkspacesTable prints workspaces in a table format
func PrintWorkspacesTable(workspaces []client.WorkspaceInfo) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Num", "Name", "Output", "Focused", "Visible", "Urgent")

	for _, ws := range workspaces {
		focused := ""
		if ws.Focused {
			focused = "*"
		}
		visible := ""
		if ws.Visible {
			visible = "*"
		}
		urgent := ""
		if ws.Urgent {
			urgent = "!"
		}

		table.Append(
			strconv.Itoa(ws.Num),
			ws.Name,
			ws.Output,
			focused,
			visible,
			urgent,
		)
	}

	table.Render()
}

// truncate shortens a string to maxLen, adding ellipsis when needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
