package admin

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"portfolio-gif/internal/gifmeta"
)

// FallbackDuration is stored when a selected GIF cannot be measured.
const FallbackDuration = 5000 * time.Millisecond

var ErrUnknownMedia = errors.New("gif not found in media directory")

// Media is the local directory the admin picks GIFs from.
type Media struct {
	Dir string
}

// List returns the GIFs in the media directory, creating the directory if
// it does not exist yet.
func (m Media) List() ([]string, error) {
	names, err := gifmeta.EnsureDir(m.Dir)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Path resolves name inside the media directory. Only plain GIF file names
// that exist are accepted.
func (m Media) Path(name string) (string, error) {
	if name == "" || filepath.Base(name) != name || !gifmeta.IsGIFName(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownMedia, name)
	}
	p := filepath.Join(m.Dir, name)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMedia, name)
	}
	return p, nil
}

// Duration measures a GIF, falling back to FallbackDuration on failure.
func (m Media) Duration(name string) time.Duration {
	p, err := m.Path(name)
	if err != nil {
		log.Printf("[error] calculating duration for %s: %v", name, err)
		return FallbackDuration
	}
	d, err := gifmeta.FileDuration(p)
	if err != nil {
		log.Printf("[error] calculating duration for %s: %v", name, err)
		return FallbackDuration
	}
	return d
}
