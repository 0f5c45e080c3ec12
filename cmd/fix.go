package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"portfolio-gif/internal/gifmeta"
)

func fixCommand() *cli.Command {
	return &cli.Command{
		Name:      "fix",
		Usage:     "Rewrite every GIF in the given directories to loop forever",
		ArgsUsage: "[dir...]",
		Flags:     []cli.Flag{workersFlag()},
		Action:    fixAction,
	}
}

func fixAction(ctx context.Context, c *cli.Command) error {
	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		dirs = []string{DefaultStaticDir, DefaultThumbnailsDir}
	}

	opts := withWorkers(c, gifmeta.FixPreset)
	w := output(c)
	for _, dir := range dirs {
		batch, err := gifmeta.NormalizeDir(dir, opts)
		printFix(w, dir, batch, err)
	}
	return nil
}
