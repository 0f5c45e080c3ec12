package gifmeta

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = color.Palette{
	color.RGBA{A: 255},
	color.RGBA{R: 255, A: 255},
	color.RGBA{G: 255, A: 255},
	color.RGBA{B: 255, A: 255},
}

func testFrame(i int) *image.Paletted {
	frame := image.NewPaletted(image.Rect(0, 0, 8, 8), testPalette)
	for p := range frame.Pix {
		frame.Pix[p] = uint8((p + i) % len(testPalette))
	}
	return frame
}

// writeGif writes a GIF with one frame per delay (hundredths of a second).
func writeGif(t *testing.T, path string, delays []int, loop int) {
	t.Helper()
	g := &gif.GIF{LoopCount: loop}
	for i, d := range delays {
		g.Image = append(g.Image, testFrame(i))
		g.Delay = append(g.Delay, d)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, g))
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, testFrame(0)))
}

func decodeFile(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	return g
}

func TestDuration(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{testFrame(0), testFrame(1), testFrame(2)},
		Delay: []int{10, 0, 25},
	}
	assert.Equal(t, []time.Duration{100 * time.Millisecond, DefaultFrameDelay, 250 * time.Millisecond}, FrameDelays(g))
	assert.Equal(t, 450*time.Millisecond, Duration(g))
}

func TestDurationMissingDelays(t *testing.T) {
	g := &gif.GIF{Image: []*image.Paletted{testFrame(0), testFrame(1)}}
	assert.Equal(t, 2*DefaultFrameDelay, Duration(g))
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()

	t.Run("animated gif", func(t *testing.T) {
		p := filepath.Join(dir, "loop.gif")
		writeGif(t, p, []int{4, 10, 10}, 0)

		info, err := Inspect(p)
		require.NoError(t, err)
		assert.Equal(t, "GIF", info.Format)
		assert.True(t, info.Animated)
		assert.Equal(t, 3, info.Frames)
		assert.Equal(t, LoopForever, info.LoopCount)
		assert.True(t, info.HasDelay)
		assert.Equal(t, 40*time.Millisecond, info.FirstDelay)
	})

	t.Run("single frame gif has no loop marker", func(t *testing.T) {
		p := filepath.Join(dir, "still.gif")
		writeGif(t, p, []int{10}, 0)

		info, err := Inspect(p)
		require.NoError(t, err)
		assert.False(t, info.Animated)
		assert.Equal(t, 1, info.Frames)
		assert.Equal(t, LoopNotPresent, info.LoopCount)
	})

	t.Run("undeclared first delay", func(t *testing.T) {
		p := filepath.Join(dir, "nodelay.gif")
		writeGif(t, p, []int{0, 10}, 0)

		info, err := Inspect(p)
		require.NoError(t, err)
		assert.True(t, info.Animated)
		assert.False(t, info.HasDelay)
		assert.Zero(t, info.FirstDelay)
	})

	t.Run("png", func(t *testing.T) {
		p := filepath.Join(dir, "static.png")
		writePNG(t, p)

		info, err := Inspect(p)
		require.NoError(t, err)
		assert.Equal(t, "PNG", info.Format)
		assert.False(t, info.Animated)
		assert.False(t, info.HasDelay)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Inspect(filepath.Join(dir, "nope.gif"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("corrupt file", func(t *testing.T) {
		p := filepath.Join(dir, "broken.gif")
		require.NoError(t, os.WriteFile(p, []byte("GIF89a garbage"), 0o644))

		_, err := Inspect(p)
		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr))
	})

	t.Run("inspect does not modify the file", func(t *testing.T) {
		p := filepath.Join(dir, "loop.gif")
		before, err := os.ReadFile(p)
		require.NoError(t, err)
		_, err = Inspect(p)
		require.NoError(t, err)
		after, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestNormalizeDirFixPreset(t *testing.T) {
	dir := t.TempDir()
	loopPath := filepath.Join(dir, "loop.gif")
	writeGif(t, loopPath, []int{10, 10, 10}, 0)
	writePNG(t, filepath.Join(dir, "static.png"))
	original := decodeFile(t, loopPath)

	batch, err := NormalizeDir(dir, FixPreset)
	require.NoError(t, err)
	require.Len(t, batch.Files, 2)
	assert.Equal(t, 1, batch.Fixed())
	assert.Empty(t, batch.Errors())

	assert.Equal(t, "loop.gif", batch.Files[0].Name)
	assert.Equal(t, StatusFixed, batch.Files[0].Status)
	assert.Equal(t, "static.png", batch.Files[1].Name)
	assert.Equal(t, StatusSkipped, batch.Files[1].Status)

	fixed := decodeFile(t, loopPath)
	assert.Equal(t, LoopForever, fixed.LoopCount)
	require.Len(t, fixed.Image, len(original.Image))
	for i := range fixed.Image {
		assert.Equal(t, byte(gif.DisposalBackground), fixed.Disposal[i])
		assert.Equal(t, 10, fixed.Delay[i])
		assert.Equal(t, original.Image[i].Pix, fixed.Image[i].Pix)
	}
}

func TestNormalizeUniformDelayUsesFirstFrame(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mixed.gif")
	writeGif(t, p, []int{5, 20, 30}, 3)

	res, err := Normalize(p, FixPreset)
	require.NoError(t, err)
	assert.Equal(t, StatusFixed, res.Status)
	assert.Equal(t, 550*time.Millisecond, res.Duration)

	fixed := decodeFile(t, p)
	assert.Equal(t, []int{5, 5, 5}, fixed.Delay)
	assert.Equal(t, LoopForever, fixed.LoopCount)
}

func TestNormalizeSyncPresetKeepsPerFrameDelays(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mixed.gif")
	writeGif(t, p, []int{5, 0, 30}, 0)

	res, err := Normalize(p, SyncPreset)
	require.NoError(t, err)
	assert.Equal(t, 450*time.Millisecond, res.Duration)

	fixed := decodeFile(t, p)
	assert.Equal(t, []int{5, 10, 30}, fixed.Delay)
	assert.Equal(t, LoopOnceMarker, fixed.LoopCount)
	assert.Equal(t, []byte{2, 2, 2}, fixed.Disposal)
}

func TestNormalizeSkipsSingleFrame(t *testing.T) {
	p := filepath.Join(t.TempDir(), "still.gif")
	writeGif(t, p, []int{10}, 0)
	before, err := os.ReadFile(p)
	require.NoError(t, err)

	res, err := Normalize(p, SyncPreset)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)

	after, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestNormalizeDirCorruptFileDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	writeGif(t, filepath.Join(dir, "good.gif"), []int{10, 10}, 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.gif"), []byte("not a gif"), 0o644))

	batch, err := NormalizeDir(dir, Options{Loop: LoopInfinite, Delay: DelayUniformFirst, Workers: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Fixed())

	errs := batch.Errors()
	require.Len(t, errs, 1)
	var procErr *ProcessError
	require.True(t, errors.As(errs[0], &procErr))
	assert.Equal(t, "bad.gif", procErr.File)
	assert.Equal(t, StatusFailed, batch.Files[0].Status)
}

func TestNormalizeDirUppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	writeGif(t, filepath.Join(dir, "SHOUT.GIF"), []int{10, 10}, 0)

	batch, err := NormalizeDir(dir, SyncPreset)
	require.NoError(t, err)
	assert.Equal(t, 1, batch.Fixed())
	assert.Equal(t, map[string]time.Duration{"SHOUT.GIF": 200 * time.Millisecond}, batch.Durations())
}

func TestNormalizeDirMissing(t *testing.T) {
	_, err := NormalizeDir(filepath.Join(t.TempDir(), "missing"), FixPreset)
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static")

	names, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.DirExists(t, dir)

	writeGif(t, filepath.Join(dir, "b.gif"), []int{10, 10}, 0)
	writeGif(t, filepath.Join(dir, "a.GIF"), []int{10, 10}, 0)
	writePNG(t, filepath.Join(dir, "c.png"))

	names, err = EnsureDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.GIF", "b.gif"}, names)
}

func TestPreview(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "offset.gif")

	g := &gif.GIF{
		Image: []*image.Paletted{
			image.NewPaletted(image.Rect(10, 10, 20, 20), testPalette),
			image.NewPaletted(image.Rect(0, 0, 800, 400), testPalette),
		},
		Delay:  []int{10, 10},
		Config: image.Config{Width: 800, Height: 400, ColorModel: testPalette},
	}
	f, err := os.Create(p)
	require.NoError(t, err)
	require.NoError(t, gif.EncodeAll(f, g))
	require.NoError(t, f.Close())

	img, err := Preview(p, PreviewWidth)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	out, err := os.Create(filepath.Join(dir, "preview.png"))
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, WritePreview(out, p, PreviewWidth))
}
