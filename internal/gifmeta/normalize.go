package gifmeta

import (
	"fmt"
	"image"
	"image/gif"
	"time"
)

// LoopPolicy selects the loop marker written into a normalized GIF.
type LoopPolicy int

const (
	LoopInfinite LoopPolicy = iota
	LoopOnce
)

func (p LoopPolicy) marker() int {
	if p == LoopOnce {
		return LoopOnceMarker
	}
	return LoopForever
}

func (p LoopPolicy) String() string {
	if p == LoopOnce {
		return "once"
	}
	return "infinite"
}

// DelayPolicy selects how frame delays are written into a normalized GIF.
type DelayPolicy int

const (
	// DelayUniformFirst applies the first frame's delay to every frame.
	DelayUniformFirst DelayPolicy = iota
	// DelayPerFrame keeps each frame's own delay.
	DelayPerFrame
)

func (p DelayPolicy) String() string {
	if p == DelayPerFrame {
		return "per-frame"
	}
	return "uniform"
}

type Options struct {
	Loop    LoopPolicy
	Delay   DelayPolicy
	Workers int
}

// FixPreset is the normalizer's policy: loop forever, uniform delay.
var FixPreset = Options{Loop: LoopInfinite, Delay: DelayUniformFirst}

// SyncPreset is the synchronizer's policy: play once, keep per-frame timing.
var SyncPreset = Options{Loop: LoopOnce, Delay: DelayPerFrame}

// frameDelay converts one stored delay, substituting DefaultFrameDelay when
// the frame has none.
func frameDelay(cs int) time.Duration {
	if cs <= 0 {
		return DefaultFrameDelay
	}
	return time.Duration(cs) * delayUnit
}

// FrameDelays returns the effective display delay of every frame.
func FrameDelays(g *gif.GIF) []time.Duration {
	delays := make([]time.Duration, len(g.Image))
	for i := range g.Image {
		cs := 0
		if i < len(g.Delay) {
			cs = g.Delay[i]
		}
		delays[i] = frameDelay(cs)
	}
	return delays
}

// Duration is the total playback time of one loop of g.
func Duration(g *gif.GIF) time.Duration {
	var total time.Duration
	for _, d := range FrameDelays(g) {
		total += d
	}
	return total
}

// FileDuration decodes the GIF at path and returns its total playback time.
func FileDuration(path string) (time.Duration, error) {
	img, err := readPath(path)
	if err != nil {
		return 0, err
	}
	return Duration(img.decode), nil
}

func isAnimated(g *gif.GIF) bool {
	return len(g.Image) > 1
}

// rewrite gives a gif with
//   - the same frames (pixel data shared, not copied)
//   - loop marker and delays chosen by opts
//   - every frame disposed to background
func rewrite(g *gif.GIF, opts Options) *gif.GIF {
	out := &gif.GIF{
		Image:           make([]*image.Paletted, len(g.Image)),
		Delay:           make([]int, len(g.Image)),
		Disposal:        make([]byte, len(g.Image)),
		BackgroundIndex: g.BackgroundIndex,
		Config:          g.Config,
		LoopCount:       opts.Loop.marker(),
	}
	copy(out.Image, g.Image)

	delays := FrameDelays(g)
	for i := range out.Image {
		d := delays[i]
		if opts.Delay == DelayUniformFirst {
			d = delays[0]
		}
		out.Delay[i] = int(d / delayUnit)
		out.Disposal[i] = DisposalRestoreBackground
	}
	return out
}

// Normalize rewrites the GIF at path in place according to opts.
// A single-frame image is left untouched and reported as skipped.
func Normalize(path string, opts Options) (FileResult, error) {
	res := FileResult{Path: path, Name: baseName(path)}

	img, err := readPath(path)
	if err != nil {
		return res, err
	}
	res.Frames = len(img.decode.Image)
	res.Duration = Duration(img.decode)

	if !isAnimated(img.decode) {
		res.Status = StatusSkipped
		res.Reason = "not animated"
		return res, nil
	}

	img.decode = rewrite(img.decode, opts)
	if err := saveGif(img); err != nil {
		return res, fmt.Errorf("saving: %w", err)
	}
	res.Status = StatusFixed
	return res, nil
}
