package output

import (
	"strings"
	"testing"

	"github.com/yourusername/sway-cli/internal/tree"
)

const visualTree = `{
  "id": 1, "type": "root",
  "nodes": [
    {"id": 2, "type": "output", "name": "DP-1", "current_workspace": "2",
     "rect": {"x": 0, "y": 0, "width": 1600, "height": 900},
     "nodes": [
       {"id": 11, "type": "workspace", "name": "2", "nodes": [
         {"id": 20, "type": "con", "name": "editor", "app_id": "foot",
          "rect": {"x": 0, "y": 0, "width": 800, "height": 900}},
         {"id": 21, "type": "con", "name": "browser", "app_id": "firefox",
          "rect": {"x": 800, "y": 0, "width": 800, "height": 900}}
       ]}
     ]}
  ]
}`

func visualSnapshot(t *testing.T) *tree.Snapshot {
	t.Helper()
	snap, err := tree.Decode([]byte(visualTree))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return snap
}

func TestVisualizeOutput(t *testing.T) {
	snap := visualSnapshot(t)
	opts := VisualizationOptions{UseUnicode: false, ShowIDs: true, MaxWidth: 60, MaxHeight: 10}

	got := VisualizeOutput(snap.OutputByName("DP-1"), opts)

	for _, want := range []string{"Output DP-1 [1600x900]", "workspace 2", "[20] foot", "[21] firefox", "Total: 2 views"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendering missing %q:\n%s", want, got)
		}
	}
}

func TestVisualizeOutputHidesIDs(t *testing.T) {
	snap := visualSnapshot(t)
	opts := VisualizationOptions{MaxWidth: 40, MaxHeight: 10}

	got := VisualizeOutput(snap.OutputByName("DP-1"), opts)
	if strings.Contains(got, "[20]") {
		t.Errorf("rendering shows IDs with ShowIDs off:\n%s", got)
	}
	if !strings.Contains(got, "foot") {
		t.Errorf("rendering missing app label:\n%s", got)
	}
}

func TestVisualizeEmptyWorkspace(t *testing.T) {
	const empty = `{
	  "id": 1, "type": "root",
	  "nodes": [
	    {"id": 2, "type": "output", "name": "DP-1", "current_workspace": "1",
	     "rect": {"x": 0, "y": 0, "width": 1600, "height": 900},
	     "nodes": [{"id": 10, "type": "workspace", "name": "1"}]}
	  ]
	}`
	snap, err := tree.Decode([]byte(empty))
	if err != nil {
		t.Fatal(err)
	}

	got := VisualizeOutput(snap.OutputByName("DP-1"), DefaultVisualizationOptions())
	if !strings.Contains(got, "(no views)") {
		t.Errorf("rendering = %q, want no-views marker", got)
	}
}

func TestVisualizeSnapshotNoOutputs(t *testing.T) {
	snap, err := tree.Decode([]byte(`{"id": 1, "type": "root"}`))
	if err != nil {
		t.Fatal(err)
	}

	got := VisualizeSnapshot(snap, DefaultVisualizationOptions())
	if !strings.Contains(got, "No outputs") {
		t.Errorf("rendering = %q", got)
	}
}

func TestPrintVisualizationUnknownOutput(t *testing.T) {
	snap := visualSnapshot(t)

	err := PrintVisualization(snap, "HDMI-A-1", DefaultVisualizationOptions())
	if err == nil || !strings.Contains(err.Error(), "HDMI-A-1") {
		t.Errorf("err = %v, want unknown output error", err)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		v, src, dst, want int
	}{
		{800, 1600, 40, 20},
		{0, 1600, 40, 0},
		{1600, 1600, 40, 40},
		{100, 0, 40, 0},
	}

	for _, tt := range tests {
		if got := scale(tt.v, tt.src, tt.dst); got != tt.want {
			t.Errorf("scale(%d, %d, %d) = %d, want %d", tt.v, tt.src, tt.dst, got, tt.want)
		}
	}
}
