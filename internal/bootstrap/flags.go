// Package bootstrap wires the lazyclones command line to the application.
package bootstrap

import (
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Usage:   "Directory whose subdirectories are listed (default: current directory)",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.BoolFlag{
			Name:  "no-fetch",
			Usage: "Classify against existing remote-tracking refs without fetching",
		},
		&urfavecli.BoolFlag{
			Name:  "show-icons",
			Usage: "Use Nerd Font icons in directory trees",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=lc.key=value",
		},
	}
}
