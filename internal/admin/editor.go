package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"portfolio-gif/internal/project"
	"portfolio-gif/internal/store"
)

// Editor applies admin form actions to the project collection.
type Editor struct {
	store      store.Store
	collection string
	media      Media
	now        func() time.Time
}

func NewEditor(s store.Store, collection string, media Media) *Editor {
	return &Editor{store: s, collection: collection, media: media, now: time.Now}
}

// Listing is the admin view of the collection.
type Listing struct {
	Projects []project.Record
	Invalid  []error
}

// List decodes every stored project; records failing validation are
// reported separately.
func (e *Editor) List(ctx context.Context) (*Listing, error) {
	docs, err := e.store.Get(ctx, e.collection)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(docs))
	for key := range docs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	listing := &Listing{Projects: []project.Record{}}
	for _, key := range keys {
		rec, err := project.FromDocument(key, docs[key])
		if err != nil {
			listing.Invalid = append(listing.Invalid, err)
			continue
		}
		listing.Projects = append(listing.Projects, rec)
	}
	return listing, nil
}

// Edit returns a form loaded with the record stored under key.
func (e *Editor) Edit(ctx context.Context, key string) (project.FormState, error) {
	docs, err := e.store.Get(ctx, e.collection)
	if err != nil {
		return project.FormState{}, err
	}
	doc, ok := docs[key]
	if !ok {
		return project.FormState{}, fmt.Errorf("%w: %s", store.ErrNotFound, key)
	}
	rec, err := project.FromDocument(key, doc)
	if err != nil {
		return project.FormState{}, err
	}
	return project.BeginEdit(rec), nil
}

// Submit validates the form, then creates or updates the record it
// describes. On success the returned state is the empty form; on failure
// the given state comes back unchanged.
func (e *Editor) Submit(ctx context.Context, s project.FormState) (project.FormState, string, error) {
	if err := s.Validate(); err != nil {
		return s, "", err
	}
	if _, err := e.media.Path(s.SelectedGIF); err != nil {
		return s, "", err
	}

	rec := s.Record(e.media.Duration(s.SelectedGIF), e.now())
	key := s.EditID
	if s.EditMode {
		if err := e.store.Update(ctx, e.collection, key, rec.Document()); err != nil {
			return s, "", err
		}
	} else {
		var err error
		if key, err = e.store.Push(ctx, e.collection, rec.Document()); err != nil {
			return s, "", err
		}
	}
	return project.Reset(), key, nil
}

// Cancel discards the form.
func (e *Editor) Cancel(project.FormState) project.FormState {
	return project.Reset()
}

func (e *Editor) Delete(ctx context.Context, key string) error {
	return e.store.Delete(ctx, e.collection, key)
}

// IsValidation reports whether err is caused by the form content rather
// than by the store.
func IsValidation(err error) bool {
	return errors.Is(err, project.ErrTitleRequired) ||
		errors.Is(err, project.ErrMediaRequired) ||
		errors.Is(err, ErrUnknownMedia)
}
