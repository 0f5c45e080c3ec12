package gifmeta

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

// Info is the read-only report produced by Inspect.
type Info struct {
	Path     string
	Format   string
	Animated bool
	Frames   int
	// LoopCount is LoopNotPresent when the file declares no loop marker.
	LoopCount int
	// FirstDelay is the first frame's declared delay. HasDelay is false for
	// formats without frame timing and for GIFs whose first frame declares
	// none, which the decoder reports as zero.
	FirstDelay time.Duration
	HasDelay   bool
}

// Inspect decodes the image at path and reports its animation metadata
// without modifying it.
func Inspect(path string) (*Info, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer file.Close()

	_, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	info := &Info{
		Path:      path,
		Format:    strings.ToUpper(format),
		Frames:    1,
		LoopCount: LoopNotPresent,
	}
	if format != "gif" {
		return info, nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	g, err := gif.DecodeAll(file)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	info.Frames = len(g.Image)
	info.Animated = isAnimated(g)
	info.LoopCount = g.LoopCount
	if len(g.Delay) > 0 && g.Delay[0] > 0 {
		info.FirstDelay = time.Duration(g.Delay[0]) * delayUnit
		info.HasDelay = true
	}
	return info, nil
}
