package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/lazyclones/internal/cli"
	"github.com/chmouel/lazyclones/internal/config"
	"github.com/chmouel/lazyclones/internal/status"
	"github.com/chmouel/lazyclones/internal/tree"
)

func listCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Print every clone under the root with its sync status",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "json",
				Usage: "Print JSON instead of a table",
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, err := loadCLIConfig(cmd)
			if err != nil {
				return err
			}
			return runList(ctx, cmd, cfg, cmd.Bool("json"))
		},
	}
}

func treeCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "tree",
		Usage:     "Print the directory tree of one clone",
		ArgsUsage: "NAME",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			name := strings.TrimSpace(cmd.Args().First())
			if name == "" || cmd.Args().Len() > 1 {
				return fmt.Errorf("tree expects exactly one repository name")
			}
			cfg, err := loadCLIConfig(cmd)
			if err != nil {
				return err
			}
			return cli.WriteTree(cmd.Root().Writer, cfg.RootDir, name, tree.Options{Icons: cfg.ShowIcons})
		},
	}
}

func runList(ctx context.Context, cmd *urfavecli.Command, cfg *config.AppConfig, asJSON bool) error {
	entries, err := cli.Collect(ctx, cfg.RootDir, newClassifier(cfg), cfg.MaxConcurrency)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	if asJSON {
		return cli.WriteJSON(out, entries)
	}
	cli.WriteTable(out, entries)
	return nil
}

// newClassifier builds the git-backed classifier used by list. Tests swap it.
var newClassifier = func(cfg *config.AppConfig) cli.Classifier {
	return status.NewGitClassifier(cfg.MaxConcurrency, status.Options{
		Fetch:        cfg.Fetch,
		FetchTimeout: cfg.FetchTimeout,
	}, cliNotify)
}

// cliNotify is a notification callback for git operations in CLI mode.
func cliNotify(message, severity string) {
	if severity == "error" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", message)
}
