package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"portfolio-gif/internal/gifmeta"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report format, frames, loop marker and delay of one image",
		ArgsUsage: "[path]",
		Action:    checkAction,
	}
}

func checkAction(ctx context.Context, c *cli.Command) error {
	p := c.Args().First()
	if p == "" {
		p = DefaultInspectPath
	}
	info, err := gifmeta.Inspect(p)
	printInspect(output(c), p, info, err)
	return nil
}
