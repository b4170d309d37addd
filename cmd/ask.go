package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/brief"
	"github.com/aura/internal/markup"
	"github.com/aura/internal/prompts"
)

// AskCommand returns the command that runs one brief from the terminal
func AskCommand() *cli.Command {
	return &cli.Command{
		Name:  "ask",
		Usage: "Send a design brief to Aura and print the analysis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "brief",
				Aliases:  []string{"b"},
				Usage:    "Read the brief JSON from `FILE` (- for stdin)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the model's markdown instead of HTML",
			},
		},
		Action: runAsk,
	}
}

func runAsk(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	generator, err := buildGenerator(c.Context, cfg)
	if err != nil {
		return err
	}

	builder, err := promptBuilder(cfg)
	if err != nil {
		return err
	}

	return ask(c, generator, builder, c.App.Reader, c.App.Writer)
}

func ask(c *cli.Context, generator ai.Generator, builder *prompts.PromptBuilder, stdin io.Reader, out io.Writer) error {
	data, err := readBrief(c.String("brief"), stdin)
	if err != nil {
		return err
	}

	b, err := brief.Decode(data)
	if err != nil {
		return err
	}

	text, err := generator.Generate(c.Context, builder.BuildBriefPrompt(b))
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if !c.Bool("raw") {
		text = markup.ToHTML(text)
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func readBrief(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brief: %w", err)
	}
	return data, nil
}
