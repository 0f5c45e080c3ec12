// Package store is the key-value document store the portfolio keeps its
// project records in.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Document is one schemaless record as the store returns it.
type Document map[string]any

// Store is the narrow interface every backend implements. Collections are
// flat: a collection maps record keys to documents.
type Store interface {
	Get(ctx context.Context, collection string) (map[string]Document, error)
	Push(ctx context.Context, collection string, doc Document) (string, error)
	Update(ctx context.Context, collection, key string, fields Document) error
	Delete(ctx context.Context, collection, key string) error
	// Ping checks the backend can serve collection without reading its
	// documents.
	Ping(ctx context.Context, collection string) error
}

var ErrNotFound = errors.New("record not found")

// StoreError wraps every failure reported by a backend.
type StoreError struct {
	Op         string
	Collection string
	Key        string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s %s/%s: %v", e.Op, e.Collection, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func wrap(op, collection, key string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Collection: collection, Key: key, Err: err}
}

func merge(dst, fields Document) Document {
	if dst == nil {
		dst = Document{}
	}
	for k, v := range fields {
		dst[k] = v
	}
	return dst
}
