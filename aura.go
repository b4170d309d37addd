package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aura/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	app := NewApp()

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// NewApp builds the aura command tree
func NewApp() *cli.App {
	return &cli.App{
		Name:    "aura",
		Usage:   "UX strategy analysis for design briefs, powered by Gemini",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE` (default: ./aura.toml or ~/.aura.toml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override server.log_level",
			},
		},
		Commands: []*cli.Command{
			cmd.ServeCommand(),
			cmd.AskCommand(),
			cmd.ConfigCommand(),
		},
	}
}
