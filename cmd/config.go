package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/aura/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "aura.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: runConfigValidate,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration with the API key masked",
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")

	if err := config.InitConfig(outputPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Created configuration file at %s\n", outputPath)
	return nil
}

func runConfigValidate(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintln(c.App.Writer, "Configuration is valid")
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintln(w, "[server]")
	fmt.Fprintf(w, "port = %d\n", cfg.Server.Port)
	fmt.Fprintf(w, "log_level = %q\n", cfg.Server.LogLevel)
	fmt.Fprintf(w, "log_pretty = %t\n", cfg.Server.LogPretty)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[gemini]")
	fmt.Fprintf(w, "api_key = %q\n", config.MaskSecret(cfg.Gemini.APIKey))
	fmt.Fprintf(w, "model = %q\n", cfg.Gemini.Model)
	fmt.Fprintf(w, "backend = %q\n", cfg.Gemini.Backend)
	fmt.Fprintf(w, "temperature = %g\n", cfg.Gemini.Temperature)
	fmt.Fprintf(w, "timeout = %q\n", cfg.Gemini.Timeout.String())
	fmt.Fprintf(w, "persona_file = %q\n", cfg.Gemini.PersonaFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[retry]")
	fmt.Fprintf(w, "max_retries = %d\n", cfg.Retry.MaxRetries)
	fmt.Fprintf(w, "base_delay = %q\n", cfg.Retry.BaseDelay.String())
	fmt.Fprintf(w, "max_delay = %q\n", cfg.Retry.MaxDelay.String())
	return nil
}
