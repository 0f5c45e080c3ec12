package gifmeta

import (
	"image/gif"
	"time"
)

// DefaultFrameDelay is used for every frame that carries no delay of its own.
const DefaultFrameDelay = 100 * time.Millisecond

// Loop markers as stored in the NETSCAPE application extension.
const (
	LoopNotPresent = -1 // no NETSCAPE extension in the file
	LoopForever    = 0
	LoopOnceMarker = 1
)

// DisposalRestoreBackground is forced on every frame of a normalized GIF.
const DisposalRestoreBackground = gif.DisposalBackground

// DefaultWorkers bounds how many files of one directory are rewritten at once.
const DefaultWorkers = 4

const gifExt = ".gif"

// image/gif stores delays in hundredths of a second.
const delayUnit = 10 * time.Millisecond
