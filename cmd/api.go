package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/aura/internal/api"
)

// ServeCommand returns the CLI command for starting the API server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the Aura API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides server.port)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			port := cfg.Server.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			generator, err := buildGenerator(c.Context, cfg)
			if err != nil {
				return err
			}

			builder, err := promptBuilder(cfg)
			if err != nil {
				return err
			}

			log.Info().
				Int("port", port).
				Str("backend", cfg.Gemini.Backend).
				Str("model", cfg.Gemini.Model).
				Dur("timeout", cfg.Gemini.Timeout).
				Int("max_retries", cfg.Retry.MaxRetries).
				Bool("custom_persona", cfg.Gemini.PersonaFile != "").
				Msg("Starting Aura API server")

			server := api.NewServer(port, generator, builder)
			return server.Start()
		},
	}
}
