package cmd

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"portfolio-gif/internal/gifmeta"
	"portfolio-gif/internal/metasync"
)

func writeGif(t *testing.T, path string, delays []int) {
	t.Helper()
	palette := color.Palette{color.Black, color.White}
	g := &gif.GIF{}
	for _, d := range delays {
		g.Image = append(g.Image, image.NewPaletted(image.Rect(0, 0, 4, 4), palette))
		g.Delay = append(g.Delay, d)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, g))
}

func run(t *testing.T, sub *cli.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	root := &cli.Command{Name: "portfolio-gif", Writer: &buf, Commands: []*cli.Command{sub}}
	require.NoError(t, root.Run(context.Background(), append([]string{"portfolio-gif", sub.Name}, args...)))
	return buf.String()
}

func TestFixCommand(t *testing.T) {
	dir := t.TempDir()
	writeGif(t, filepath.Join(dir, "loop.gif"), []int{10, 10, 10})
	writeGif(t, filepath.Join(dir, "still.gif"), []int{10})
	missing := filepath.Join(dir, "thumbnails")

	out := run(t, fixCommand(), dir, missing)
	assert.Contains(t, out, "🟢 Fixed looping for: loop.gif")
	assert.Contains(t, out, "ℹ️ still.gif is not animated.")
	assert.Contains(t, out, "Done! Fixed 1 GIFs.")
	assert.Contains(t, out, "Directory "+missing+" does not exist.")
}

func TestCheckCommand(t *testing.T) {
	p := filepath.Join(t.TempDir(), "Portfolio.gif")
	writeGif(t, p, []int{7, 10})

	out := run(t, checkCommand(), p)
	assert.Contains(t, out, "Format: GIF")
	assert.Contains(t, out, "Animated: true")
	assert.Contains(t, out, "Frames: 2")
	assert.Contains(t, out, "Loop: 0")
	assert.Contains(t, out, "Duration: 70")
}

func TestCheckCommandUndeclaredDelay(t *testing.T) {
	p := filepath.Join(t.TempDir(), "Portfolio.gif")
	writeGif(t, p, []int{0, 10})

	out := run(t, checkCommand(), p)
	assert.Contains(t, out, "Frames: 2")
	assert.Contains(t, out, "Duration: N/A")
}

func TestWorkersFlag(t *testing.T) {
	capture := func(got *gifmeta.Options) *cli.Command {
		return &cli.Command{
			Name:  "fix",
			Flags: []cli.Flag{workersFlag()},
			Action: func(_ context.Context, c *cli.Command) error {
				*got = withWorkers(c, gifmeta.FixPreset)
				return nil
			},
		}
	}

	t.Run("default", func(t *testing.T) {
		t.Setenv("WORKERS", "")
		var got gifmeta.Options
		run(t, capture(&got))
		assert.Equal(t, gifmeta.DefaultWorkers, got.Workers)
		assert.Equal(t, gifmeta.LoopInfinite, got.Loop)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("WORKERS", "7")
		var got gifmeta.Options
		run(t, capture(&got))
		assert.Equal(t, 7, got.Workers)
		assert.Equal(t, gifmeta.DelayUniformFirst, got.Delay)
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Setenv("WORKERS", "7")
		var got gifmeta.Options
		run(t, capture(&got), "--workers", "2")
		assert.Equal(t, 2, got.Workers)
	})
}

func TestSyncMissingDirectoryOpensNoStore(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_BACKEND", "mongo")
	missing := filepath.Join(t.TempDir(), "static")

	out := run(t, syncCommand(), missing)
	assert.Equal(t, "Directory "+missing+" does not exist.\n", out)
}

func TestPrintInspectMissing(t *testing.T) {
	var buf bytes.Buffer
	_, err := gifmeta.Inspect("nope.gif")
	printInspect(&buf, "nope.gif", nil, err)
	assert.Equal(t, "File not found: nope.gif\n", buf.String())
}

func TestPrintFixFailure(t *testing.T) {
	var buf bytes.Buffer
	batch := &gifmeta.BatchResult{Dir: "static", Files: []gifmeta.FileResult{
		{Name: "bad.gif", Status: gifmeta.StatusFailed, Err: &gifmeta.ProcessError{File: "bad.gif", Err: errors.New("gif: bad header")}},
		{Name: "static.png", Status: gifmeta.StatusSkipped, Reason: "not a gif"},
	}}
	printFix(&buf, "static", batch, nil)

	assert.Equal(t, "Scanning static for GIFs...\n"+
		"❌ Error processing bad.gif: gif: bad header\n"+
		"ℹ️ static.png is not a gif.\n"+
		"Done! Fixed 0 GIFs.\n", buf.String())
}

func TestPrintSync(t *testing.T) {
	var buf bytes.Buffer
	report := &metasync.Report{
		Batch: &gifmeta.BatchResult{Dir: "static", Files: []gifmeta.FileResult{
			{Name: "loop.gif", Status: gifmeta.StatusFixed, Duration: 300 * time.Millisecond},
		}},
		Updated:   []metasync.Updated{{Key: "k1", Title: "Loop", Filename: "loop.gif", Duration: 300 * time.Millisecond}},
		Unmatched: []metasync.Unmatched{{Key: "k2", Title: "Gone", Filename: "gone.gif"}},
	}
	printSync(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "🟢 processed loop.gif: Duration=300ms, Loop=1")
	assert.Contains(t, out, "🟢 Updated Project 'Loop' with duration 300ms")
	assert.Contains(t, out, "⚠️ Project 'Gone': GIF gone.gif not found or calculated.")
	assert.Contains(t, out, "Done! Updated 1 projects, 1 unmatched.")
}
