package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/chmouel/lazyclones/internal/app"
	"github.com/chmouel/lazyclones/internal/buildinfo"
	"github.com/chmouel/lazyclones/internal/config"
	"github.com/chmouel/lazyclones/internal/log"
)

// isTerminal reports whether stdout can host the TUI. Tests override it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runProgram starts the interactive viewer. Tests override it.
var runProgram = func(cfg *config.AppConfig) error {
	model := app.NewModel(cfg, nil)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	model.Close()
	return err
}

// Run executes the lazyclones command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewCommand()
	cmd.Writer = stdout
	cmd.ErrWriter = stderr
	err := cmd.Run(ctx, args)
	_ = log.Close()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

// NewCommand builds the root command with its subcommands.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "lazyclones",
		Usage:   "Show which git clones under a directory need attention",
		Version: buildinfo.Summary(),
		Flags:   globalFlags(),

		EnableShellCompletion: true,

		Commands: []*urfavecli.Command{
			listCommand(),
			treeCommand(),
		},
		Action: runTUI,
	}
}

// runTUI is the default action. Without a terminal it prints the list instead.
func runTUI(ctx context.Context, cmd *urfavecli.Command) error {
	if cmd.Args().Present() {
		return fmt.Errorf("unknown command %q", cmd.Args().First())
	}
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	if !isTerminal() {
		return runList(ctx, cmd, cfg, false)
	}
	if err := runProgram(cfg); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// loadCLIConfig resolves configuration for every command. Precedence from
// lowest to highest: defaults, YAML file, git config, --config overrides,
// dedicated flags.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	debugLog := cmd.String("debug-log")
	if debugLog != "" {
		setDebugLog(cmd.Root().ErrWriter, debugLog)
	}

	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	if root := cmd.String("root"); root != "" {
		cfg.RootDir = root
	}
	if name := cmd.String("theme"); name != "" {
		normalized := config.NormalizeThemeName(name)
		if normalized == "" {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		cfg.Theme = normalized
	}
	if cmd.Bool("no-fetch") {
		cfg.Fetch = false
	}
	if cmd.Bool("show-icons") {
		cfg.ShowIcons = true
	}

	if debugLog != "" {
		cfg.DebugLog = debugLog
	} else if cfg.DebugLog != "" {
		setDebugLog(cmd.Root().ErrWriter, cfg.DebugLog)
	} else {
		// No debug log configured, discard any buffered logs
		_ = log.SetFile("")
	}

	if err := cfg.ResolveRootDir(); err != nil {
		return nil, err
	}
	log.Printf("root directory: %s", cfg.RootDir)
	return cfg, nil
}

func setDebugLog(stderr io.Writer, path string) {
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}
