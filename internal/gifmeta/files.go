package gifmeta

import (
	"errors"
	"fmt"
	"image/gif"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type gifImg struct {
	decode *gif.GIF
	path   string
	info   os.FileInfo
}

// IsGIFName reports whether name carries the animated-image extension,
// ignoring case.
func IsGIFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), gifExt)
}

// readDir lists the regular entries of dir sorted by name.
func readDir(dir string) ([]fs.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is not a directory", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading '%s': %w", dir, err)
	}
	files := entries[:0]
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, entry)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
	return files, nil
}

// ListGIFs returns the names of the GIF files directly inside dir.
func ListGIFs(dir string) ([]string, error) {
	entries, err := readDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if IsGIFName(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// EnsureDir is ListGIFs for callers that treat a missing directory as empty:
// the directory is created and no names are returned.
func EnsureDir(dir string) ([]string, error) {
	names, err := ListGIFs(dir)
	if errors.Is(err, ErrDirectoryNotFound) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, mkErr
		}
		return nil, nil
	}
	return names, err
}

func readPath(p string) (*gifImg, error) {
	file, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("'%s' is a directory", p)
	}

	decode, err := gif.DecodeAll(file)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return &gifImg{decode: decode, path: p, info: info}, nil
}
