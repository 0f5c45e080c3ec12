// Package project defines the portfolio project record and the admin form
// that edits it.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-gif/internal/store"
)

// MediaKindGIF is the only media kind the portfolio renders.
const MediaKindGIF = "gif"

// Document field names, shared with the public page's JavaScript.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStack       = "stack"
	FieldChallenge   = "challenge"
	FieldLinks       = "links"
	FieldMediaType   = "media_type"
	FieldGIFFilename = "gifFilename"
	FieldDuration    = "duration"
	FieldTimestamp   = "timestamp"
)

var ErrInvalidRecord = errors.New("invalid project record")

type Links struct {
	Repository string `json:"github"`
	LiveDemo   string `json:"live"`
}

type Media struct {
	Kind     string `json:"media_type"`
	Filename string `json:"gifFilename"`
}

// Record is one project. Optional fields decode to their zero values:
// Stack to an empty list, Links to empty strings.
type Record struct {
	Key         string        `json:"key"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Stack       []string      `json:"stack"`
	Challenge   string        `json:"challenge"`
	Links       Links         `json:"links"`
	Media       Media         `json:"media"`
	Duration    time.Duration `json:"-"`
	CreatedAt   time.Time     `json:"-"`
}

func (r Record) IsGIF() bool {
	return r.Media.Kind == MediaKindGIF
}

// MarshalJSON reports duration in milliseconds and the timestamp as epoch
// milliseconds, the units the store uses.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		DurationMs int64 `json:"duration"`
		Timestamp  int64 `json:"timestamp"`
	}{plain(r), r.Duration.Milliseconds(), r.CreatedAt.UnixMilli()})
}

// Document is the store representation of r, without its key.
func (r Record) Document() store.Document {
	stack := r.Stack
	if stack == nil {
		stack = []string{}
	}
	return store.Document{
		FieldTitle:       r.Title,
		FieldDescription: r.Description,
		FieldStack:       stack,
		FieldChallenge:   r.Challenge,
		FieldLinks: map[string]any{
			"github": r.Links.Repository,
			"live":   r.Links.LiveDemo,
		},
		FieldMediaType:   r.Media.Kind,
		FieldGIFFilename: r.Media.Filename,
		FieldDuration:    r.Duration.Milliseconds(),
		FieldTimestamp:   r.CreatedAt.UnixMilli(),
	}
}

// DurationDocument is the partial update the synchronizer writes.
func DurationDocument(d time.Duration) store.Document {
	return store.Document{FieldDuration: d.Milliseconds()}
}

// FromDocument validates a stored document. Missing optional fields get
// their defaults; a field holding the wrong type is an error.
func FromDocument(key string, doc store.Document) (Record, error) {
	r := Record{Key: key}
	var err error
	field := func(name string, dst *string) {
		if err != nil {
			return
		}
		*dst, err = stringField(doc, name)
	}
	field(FieldTitle, &r.Title)
	field(FieldDescription, &r.Description)
	field(FieldChallenge, &r.Challenge)
	field(FieldMediaType, &r.Media.Kind)
	field(FieldGIFFilename, &r.Media.Filename)
	if err != nil {
		return Record{}, fmt.Errorf("%w %s: %v", ErrInvalidRecord, key, err)
	}

	if r.Stack, err = stringList(doc[FieldStack]); err != nil {
		return Record{}, fmt.Errorf("%w %s: stack: %v", ErrInvalidRecord, key, err)
	}
	if r.Links, err = links(doc[FieldLinks]); err != nil {
		return Record{}, fmt.Errorf("%w %s: links: %v", ErrInvalidRecord, key, err)
	}

	ms, err := number(doc[FieldDuration])
	if err != nil {
		return Record{}, fmt.Errorf("%w %s: duration: %v", ErrInvalidRecord, key, err)
	}
	r.Duration = time.Duration(ms) * time.Millisecond

	ts, err := number(doc[FieldTimestamp])
	if err != nil {
		return Record{}, fmt.Errorf("%w %s: timestamp: %v", ErrInvalidRecord, key, err)
	}
	if ts > 0 {
		r.CreatedAt = time.UnixMilli(ts)
	}
	return r, nil
}

func stringField(doc store.Document, name string) (string, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", name, v)
	}
	return s, nil
}

func stringList(v any) ([]string, error) {
	out := []string{}
	switch list := v.(type) {
	case nil:
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string item, got %T", item)
			}
			out = append(out, s)
		}
	default:
		return nil, fmt.Errorf("expected list, got %T", v)
	}
	return out, nil
}

func links(v any) (Links, error) {
	var l Links
	switch m := v.(type) {
	case nil:
	case map[string]any:
		var err error
		if l.Repository, err = stringField(m, "github"); err != nil {
			return Links{}, err
		}
		if l.LiveDemo, err = stringField(m, "live"); err != nil {
			return Links{}, err
		}
	case store.Document:
		return links(map[string]any(m))
	default:
		return Links{}, fmt.Errorf("expected object, got %T", v)
	}
	return l, nil
}

func number(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int64(n), nil
	case float32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		return n.Int64()
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
