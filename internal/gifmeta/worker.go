package gifmeta

import (
	"bufio"
	"bytes"
	"image/gif"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Status int

const (
	StatusFixed Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusFixed:
		return "fixed"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// FileResult is the outcome of normalizing one file.
type FileResult struct {
	Name     string
	Path     string
	Status   Status
	Frames   int
	Duration time.Duration
	Reason   string
	Err      error
}

// BatchResult holds the per-file outcomes of one directory, ordered by name.
type BatchResult struct {
	Dir   string
	Files []FileResult
}

// Fixed counts the files rewritten successfully.
func (b *BatchResult) Fixed() int {
	n := 0
	for _, f := range b.Files {
		if f.Status == StatusFixed {
			n++
		}
	}
	return n
}

// Errors returns the per-file ProcessErrors of the batch.
func (b *BatchResult) Errors() []error {
	var errs []error
	for _, f := range b.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Durations maps the name of every rewritten file to its total playback time.
func (b *BatchResult) Durations() map[string]time.Duration {
	durations := make(map[string]time.Duration)
	for _, f := range b.Files {
		if f.Status == StatusFixed {
			durations[f.Name] = f.Duration
		}
	}
	return durations
}

// NormalizeDir normalizes every GIF directly inside dir. Per-file failures
// are collected as ProcessErrors; only a missing directory fails the call.
func NormalizeDir(dir string, opts Options) (*BatchResult, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{Dir: dir, Files: make([]FileResult, len(entries))}
	var paths []string
	var slots []int
	for i, entry := range entries {
		if !IsGIFName(entry.Name()) {
			batch.Files[i] = FileResult{
				Name:   entry.Name(),
				Path:   filepath.Join(dir, entry.Name()),
				Status: StatusSkipped,
				Reason: "not a gif",
			}
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
		slots = append(slots, i)
	}

	results := processGifs(paths, opts)
	for i, res := range results {
		batch.Files[slots[i]] = res
	}
	return batch, nil
}

// processGifs normalizes paths concurrently, bounded by opts.Workers.
// Results keep the order of paths.
func processGifs(paths []string, opts Options) []FileResult {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results
	}

	maxWorkers := opts.Workers
	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers
	}
	if len(paths) < maxWorkers {
		maxWorkers = len(paths)
	}

	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[i] = processGif(p, opts)
		}(i, p)
	}

	wg.Wait()
	return results
}

func processGif(p string, opts Options) FileResult {
	res, err := Normalize(p, opts)
	if err != nil {
		res.Status = StatusFailed
		res.Err = &ProcessError{File: res.Name, Err: err}
	}
	return res
}

// saveGif overwrites the original file. The GIF is encoded in memory first
// so a failed encode leaves the file intact.
func saveGif(img *gifImg) error {
	var buf bytes.Buffer
	writer := bufio.NewWriter(&buf)
	if err := gif.EncodeAll(writer, img.decode); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	return os.WriteFile(img.path, buf.Bytes(), img.info.Mode().Perm())
}

func baseName(p string) string {
	return filepath.Base(p)
}
