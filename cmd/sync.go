package cmd

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"portfolio-gif/internal/config"
	"portfolio-gif/internal/gifmeta"
	"portfolio-gif/internal/metasync"
	"portfolio-gif/internal/store"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Set GIFs to play once and store their durations on matching projects",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			workersFlag(),
			&cli.StringFlag{
				Name:  "collection",
				Usage: "Store collection holding the project records",
			},
		},
		Action: syncAction,
	}
}

func syncAction(ctx context.Context, c *cli.Command) error {
	dir := c.Args().First()
	if dir == "" {
		dir = DefaultStaticDir
	}
	w := output(c)

	// A missing directory ends the run before any store is opened.
	if _, err := gifmeta.ListGIFs(dir); errors.Is(err, gifmeta.ErrDirectoryNotFound) {
		printMissingDir(w, dir)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	collection := c.String("collection")
	if collection == "" {
		collection = cfg.Store.Collection
	}

	s, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}

	workers := withWorkers(c, gifmeta.SyncPreset).Workers
	report, err := metasync.New(s, collection, workers).Run(ctx, dir)
	if errors.Is(err, gifmeta.ErrDirectoryNotFound) {
		printMissingDir(w, dir)
		return nil
	}
	printSync(w, report)
	return err
}
