// Package metasync rewrites the GIFs of a directory to play once and copies
// their playback durations into the matching project records.
package metasync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"portfolio-gif/internal/gifmeta"
	"portfolio-gif/internal/project"
	"portfolio-gif/internal/store"
)

type Synchronizer struct {
	store      store.Store
	collection string
	workers    int
}

func New(s store.Store, collection string, workers int) *Synchronizer {
	return &Synchronizer{store: s, collection: collection, workers: workers}
}

// Updated is one record whose duration was rewritten.
type Updated struct {
	Key      string
	Title    string
	Filename string
	Duration time.Duration
}

// Unmatched is a GIF record whose file was not processed in this run.
type Unmatched struct {
	Key      string
	Title    string
	Filename string
}

type Report struct {
	Batch     *gifmeta.BatchResult
	Updated   []Updated
	Unmatched []Unmatched
	// Invalid holds records that failed schema validation; they are left
	// untouched.
	Invalid []error
}

// Run normalizes dir and then updates the store. Per-file failures end up in
// the batch; a store failure aborts the update phase and is returned along
// with everything reported up to that point. Updates already written stay
// written.
func (s *Synchronizer) Run(ctx context.Context, dir string) (*Report, error) {
	opts := gifmeta.SyncPreset
	opts.Workers = s.workers
	batch, err := gifmeta.NormalizeDir(dir, opts)
	if err != nil {
		return nil, err
	}
	report := &Report{Batch: batch}

	if err := s.apply(ctx, batch.Durations(), report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Synchronizer) apply(ctx context.Context, durations map[string]time.Duration, report *Report) error {
	docs, err := s.store.Get(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("fetching projects: %w", err)
	}

	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rec, err := project.FromDocument(key, docs[key])
		if err != nil {
			report.Invalid = append(report.Invalid, err)
			continue
		}
		if !rec.IsGIF() {
			continue
		}

		d, ok := durations[rec.Media.Filename]
		if !ok || rec.Media.Filename == "" {
			report.Unmatched = append(report.Unmatched, Unmatched{Key: key, Title: rec.Title, Filename: rec.Media.Filename})
			continue
		}
		if err := s.store.Update(ctx, s.collection, key, project.DurationDocument(d)); err != nil {
			return fmt.Errorf("updating project '%s': %w", rec.Title, err)
		}
		report.Updated = append(report.Updated, Updated{Key: key, Title: rec.Title, Filename: rec.Media.Filename, Duration: d})
	}
	return nil
}
