package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourusername/sway-cli/internal/client"
	"github.com/yourusername/sway-cli/internal/config"
	"github.com/yourusername/sway-cli/internal/logging"
	"github.com/yourusername/sway-cli/internal/output"
	"github.com/yourusername/sway-cli/internal/policy"
)

var (
	socketPath string
	configPath string
	jsonOutput bool
	noColor    bool
	debugMode  bool

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "swayc",
	Short: "swayc - sway/i3 IPC client and window-management tool",
	Long: `Swayc is a command-line client for the sway window manager's IPC
protocol. It queries the manager's tree of outputs, workspaces and views,
and drives higher-level window-management policies: desktop toggling,
workspace cycling, focus cycling and view placement.`,
	Version: "0.1.0",
}

// treeCmd dumps the raw tree
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Dump the manager's full tree",
	Long:  `Fetches one snapshot of the manager's tree and prints it as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		snap, err := c.GetTree()
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch tree: %v", err))
			return err
		}
		// The tree is too deep for a table; always JSON.
		return printJSON(snap.Root())
	},
}

// viewsCmd lists all views
var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List all views (client windows)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		snap, err := c.GetTree()
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch tree: %v", err))
			return err
		}

		views := snap.Views()
		if jsonOutput {
			return printJSON(views)
		}
		output.PrintViewsTable(views)
		return nil
	},
}

// focusedCmd shows the focused view
var focusedCmd = &cobra.Command{
	Use:   "focused",
	Short: "Show the focused view",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		snap, err := c.GetTree()
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch tree: %v", err))
			return err
		}

		focused := snap.Focused()
		if focused == nil {
			infoColor.Println("No focused node")
			return nil
		}
		if jsonOutput {
			return printJSON(focused)
		}

		keyColor.Print("ID: ")
		fmt.Println(focused.ID)
		keyColor.Print("Title: ")
		fmt.Println(focused.Name)
		keyColor.Print("App ID: ")
		fmt.Println(orDash(focused.AppID))
		keyColor.Print("PID: ")
		fmt.Println(focused.PID)
		return nil
	},
}

// outputsCmd lists outputs
var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		outputs, err := c.GetOutputs()
		if err != nil {
			printError(fmt.Sprintf("Failed to list outputs: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(outputs)
		}
		output.PrintOutputsTable(outputs)
		return nil
	},
}

// workspacesCmd lists workspaces
var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		workspaces, err := c.GetWorkspaces()
		if err != nil {
			printError(fmt.Sprintf("Failed to list workspaces: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(workspaces)
		}
		output.PrintWorkspacesTable(workspaces)
		return nil
	},
}

// marksCmd lists marks
var marksCmd = &cobra.Command{
	Use:   "marks",
	Short: "List marks currently set",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		marks, err := c.GetMarks()
		if err != nil {
			printError(fmt.Sprintf("Failed to list marks: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(marks)
		}
		if len(marks) == 0 {
			infoColor.Println("No marks")
			return nil
		}
		for _, m := range marks {
			fmt.Println(m)
		}
		return nil
	},
}

// runCmd sends a raw command string
var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "Send a raw command to the manager",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		cmdline := ""
		for i, a := range args {
			if i > 0 {
				cmdline += " "
			}
			cmdline += a
		}

		results, err := c.RunCommand(cmdline)
		if err != nil {
			printError(fmt.Sprintf("Command failed: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(results)
		}
		for _, r := range results {
			if r.Success {
				successColor.Println("✓ ok")
			} else {
				printError(r.Error)
			}
		}
		return nil
	},
}

// Show-desktop flags
var showDesktopMinimize bool

// showDesktopCmd toggles the desktop on an output
var showDesktopCmd = &cobra.Command{
	Use:   "show-desktop <output-id>",
	Short: "Toggle all views on an output's visible workspace",
	Long: `Hides every view on the output's visible workspace, or brings them
back when all are already hidden. The default variant parks views in the
scratchpad; --minimize uses the minimize flag instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			printError("Invalid output ID")
			return fmt.Errorf("invalid output ID: %v", err)
		}

		p, c, err := policies()
		if err != nil {
			return err
		}
		defer c.Close()

		if showDesktopMinimize {
			err = p.ShowDesktopMinimize(outputID)
		} else {
			err = p.ShowDesktopScratchpad(outputID)
		}
		if err != nil {
			printError(fmt.Sprintf("Show-desktop failed: %v", err))
			return err
		}
		successColor.Println("✓ toggled")
		return nil
	},
}

// nextWorkspaceCmd cycles to the next populated workspace
var nextWorkspaceCmd = &cobra.Command{
	Use:   "next-workspace",
	Short: "Switch to the next workspace that has views",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, c, err := policies()
		if err != nil {
			return err
		}
		defer c.Close()

		name, err := p.CycleWorkspace()
		if err != nil {
			printError(fmt.Sprintf("Workspace cycle failed: %v", err))
			return err
		}
		if name == "" {
			infoColor.Println("No workspace with views")
			return nil
		}
		successColor.Printf("✓ workspace %s\n", name)
		return nil
	},
}

// toWorkspaceCmd moves a view to its PID-derived workspace
var toWorkspaceCmd = &cobra.Command{
	Use:   "to-workspace <view-id>",
	Short: "Move a view to a workspace named after its PID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			printError("Invalid view ID")
			return fmt.Errorf("invalid view ID: %v", err)
		}

		p, c, err := policies()
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := p.MoveViewToWorkspace(context.Background(), viewID)
		if err != nil {
			printError(fmt.Sprintf("Move failed: %v", err))
			return err
		}
		if res == nil {
			infoColor.Printf("View %d not found\n", viewID)
			return nil
		}
		successColor.Printf("✓ moved to workspace %s\n", res.Workspace)
		return nil
	},
}

// maximizeCmd floats and grows a view to the workspace rectangle
var maximizeCmd = &cobra.Command{
	Use:   "maximize <view-id>",
	Short: "Float a view and grow it to the workspace rectangle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			printError("Invalid view ID")
			return fmt.Errorf("invalid view ID: %v", err)
		}

		p, c, err := policies()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := p.MaximizeView(context.Background(), viewID); err != nil {
			printError(fmt.Sprintf("Maximize failed: %v", err))
			return err
		}
		successColor.Println("✓ maximized")
		return nil
	},
}

// cycleFocusCmd focuses the next view in the focused workspace
var cycleFocusCmd = &cobra.Command{
	Use:   "cycle-focus",
	Short: "Focus the next view in the focused workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, c, err := policies()
		if err != nil {
			return err
		}
		defer c.Close()

		id, err := p.CycleFocusInWorkspace()
		if err != nil {
			printError(fmt.Sprintf("Focus cycle failed: %v", err))
			return err
		}
		if id == 0 {
			infoColor.Println("Nothing to focus")
			return nil
		}
		successColor.Printf("✓ focused %d\n", id)
		return nil
	},
}

// opacityCmd sets a view's opacity
var opacityCmd = &cobra.Command{
	Use:   "opacity <view-id> <value>",
	Short: "Set a view's opacity (0.0 to 1.0)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		viewID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			printError("Invalid view ID")
			return fmt.Errorf("invalid view ID: %v", err)
		}
		alpha, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			printError("Invalid opacity value")
			return fmt.Errorf("invalid opacity: %v", err)
		}

		p, c, err := policies()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := p.SetViewOpacity(context.Background(), viewID, alpha); err != nil {
			printError(fmt.Sprintf("Opacity failed: %v", err))
			return err
		}
		successColor.Println("✓ opacity set")
		return nil
	},
}

// watchCmd subscribes to events and prints them as they arrive
var watchCmd = &cobra.Command{
	Use:   "watch <event...>",
	Short: "Subscribe to manager events and print them",
	Long: `Subscribes to the named events (workspace, window, output, mode,
barconfig_update, binding, shutdown, tick, bar_state_update, input) and
prints each arrival until the manager closes the stream.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		sub, err := c.Subscribe(args...)
		if err != nil {
			printError(fmt.Sprintf("Subscribe failed: %v", err))
			return err
		}

		for {
			ev, err := sub.Next()
			if errors.Is(err, io.EOF) {
				infoColor.Println("Event stream closed")
				return nil
			}
			if err != nil {
				printError(fmt.Sprintf("Event read failed: %v", err))
				return err
			}
			if jsonOutput {
				fmt.Println(string(ev.Raw))
				continue
			}
			keyColor.Printf("[%s] ", time.Now().Format("15:04:05"))
			fmt.Println(ev.Change)
		}
	},
}

// tickCmd broadcasts a tick
var tickCmd = &cobra.Command{
	Use:   "tick [payload]",
	Short: "Broadcast a tick event to subscribers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		payload := ""
		if len(args) > 0 {
			payload = args[0]
		}
		sent, err := c.SendTick(payload)
		if err != nil {
			printError(fmt.Sprintf("Tick failed: %v", err))
			return err
		}
		successColor.Printf("✓ tick %s\n", sent)
		return nil
	},
}

// pingCmd probes connection liveness
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Probe the manager socket",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		if !c.IsAlive() {
			printError("Socket is dead")
			return fmt.Errorf("socket is dead")
		}
		successColor.Println("✓ alive")
		return nil
	},
}

// versionCmd reports the manager's version
var versionCmd = &cobra.Command{
	Use:   "server-version",
	Short: "Show the manager's version",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		v, err := c.GetVersion()
		if err != nil {
			printError(fmt.Sprintf("Failed to get version: %v", err))
			return err
		}
		if jsonOutput {
			return printJSON(v)
		}
		keyColor.Print("Version: ")
		fmt.Println(v.HumanReadable)
		keyColor.Print("Config: ")
		fmt.Println(v.ConfigFile)
		return nil
	},
}

// Visualization flags
var (
	showASCII   bool
	showUnicode bool
	showNoIDs   bool
	showWidth   int
	showHeight  int
)

// showCmd visualizes output layouts
var showCmd = &cobra.Command{
	Use:   "show [output-name]",
	Short: "Visualize view layouts",
	Long: `Displays an ASCII/Unicode representation of each output's visible
workspace. Views are shown as boxes with their ID, app and size.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := connect()
		if err != nil {
			return err
		}
		defer c.Close()

		snap, err := c.GetTree()
		if err != nil {
			printError(fmt.Sprintf("Failed to fetch tree: %v", err))
			return err
		}

		outputName := ""
		if len(args) > 0 {
			outputName = args[0]
		}
		return output.PrintVisualization(snap, outputName, getVisualizationOptions())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&socketPath, "socket", "s", "", "Manager socket path (default: $SWAYSOCK)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.config/swayc/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	showDesktopCmd.Flags().BoolVar(&showDesktopMinimize, "minimize", false, "Use the minimize-flag variant instead of the scratchpad")

	showCmd.Flags().BoolVar(&showASCII, "ascii", false, "Force ASCII mode (no Unicode)")
	showCmd.Flags().BoolVar(&showUnicode, "unicode", false, "Force Unicode mode")
	showCmd.Flags().BoolVar(&showNoIDs, "no-ids", false, "Hide view IDs")
	showCmd.Flags().IntVar(&showWidth, "width", 0, "Override terminal width")
	showCmd.Flags().IntVar(&showHeight, "height", 0, "Override terminal height")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(focusedCmd)
	rootCmd.AddCommand(outputsCmd)
	rootCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(marksCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showDesktopCmd)
	rootCmd.AddCommand(nextWorkspaceCmd)
	rootCmd.AddCommand(toWorkspaceCmd)
	rootCmd.AddCommand(maximizeCmd)
	rootCmd.AddCommand(cycleFocusCmd)
	rootCmd.AddCommand(opacityCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showCmd)

	// Disable color if requested, enable debug logging if requested
	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
		if debugMode {
			logging.SetDebug(true)
		}
	})
}

func main() {
	// Initialize logging
	logging.Init()
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Helper functions

// connect loads config and dials the manager socket. The --socket flag
// wins over the config file, which wins over SWAYSOCK.
func connect() (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path := socketPath
	if path == "" {
		path = cfg.Socket
	}
	c, err := client.Connect(path)
	if err != nil {
		printError(fmt.Sprintf("Failed to connect: %v", err))
		return nil, err
	}
	return c, nil
}

// policies builds a policy set over a fresh connection. The caller
// closes the returned client.
func policies() (*policy.Policies, *client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	path := socketPath
	if path == "" {
		path = cfg.Socket
	}
	c, err := client.Connect(path)
	if err != nil {
		printError(fmt.Sprintf("Failed to connect: %v", err))
		return nil, nil, err
	}
	return policy.New(c, cfg), c, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		printError(fmt.Sprintf("Failed to load config: %v", err))
		return nil, err
	}
	return cfg, nil
}

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// getVisualizationOptions builds options from flags
func getVisualizationOptions() output.VisualizationOptions {
	opts := output.DefaultVisualizationOptions()

	if showASCII {
		opts.UseUnicode = false
	}
	if showUnicode {
		opts.UseUnicode = true
	}
	if showNoIDs {
		opts.ShowIDs = false
	}
	if showWidth > 0 {
		opts.MaxWidth = showWidth
	}
	if showHeight > 0 {
		opts.MaxHeight = showHeight
	}

	return opts
}
