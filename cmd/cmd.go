package cmd

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"portfolio-gif/internal/gifmeta"
)

// Default locations, relative to the portfolio checkout.
const (
	DefaultStaticDir     = "static"
	DefaultThumbnailsDir = "static/assets/thumbnails"
	DefaultInspectPath   = "static/Portfolio.gif"
)

var Cmd = &cli.Command{
	Name:  "portfolio-gif",
	Usage: "Maintain the portfolio's GIFs and project records",
	Commands: []*cli.Command{
		checkCommand(),
		fixCommand(),
		syncCommand(),
		serveCommand(),
	},
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "workers",
		Usage:   "Number of GIFs rewritten at once",
		Aliases: []string{"w"},
		Value:   gifmeta.DefaultWorkers,
		Sources: cli.EnvVars("WORKERS"),
	}
}

// withWorkers applies the --workers flag (or WORKERS) to a preset.
func withWorkers(c *cli.Command, preset gifmeta.Options) gifmeta.Options {
	preset.Workers = int(c.Int("workers"))
	return preset
}

func output(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
