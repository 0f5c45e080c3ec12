package store

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// Firebase is backed by a Firebase Realtime Database; each collection is a
// child of the database root.
type Firebase struct {
	client *db.Client
}

// NewFirebase initializes the Admin SDK from a service account file.
func NewFirebase(ctx context.Context, credentialsPath, databaseURL string) (*Firebase, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: databaseURL}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Database client: %w", err)
	}
	return &Firebase{client: client}, nil
}

func (f *Firebase) Get(ctx context.Context, collection string) (map[string]Document, error) {
	var out map[string]Document
	if err := f.client.NewRef(collection).Get(ctx, &out); err != nil {
		return nil, wrap("get", collection, "", err)
	}
	if out == nil {
		out = map[string]Document{}
	}
	return out, nil
}

func (f *Firebase) Push(ctx context.Context, collection string, doc Document) (string, error) {
	ref, err := f.client.NewRef(collection).Push(ctx, doc)
	if err != nil {
		return "", wrap("push", collection, "", err)
	}
	return ref.Key, nil
}

func (f *Firebase) Update(ctx context.Context, collection, key string, fields Document) error {
	err := f.client.NewRef(collection).Child(key).Update(ctx, map[string]interface{}(fields))
	return wrap("update", collection, key, err)
}

// Ping performs a shallow read, which lists child keys without their
// documents.
func (f *Firebase) Ping(ctx context.Context, collection string) error {
	var shallow any
	err := f.client.NewRef(collection).GetShallow(ctx, &shallow)
	return wrap("ping", collection, "", err)
}

func (f *Firebase) Delete(ctx context.Context, collection, key string) error {
	err := f.client.NewRef(collection).Child(key).Delete(ctx)
	return wrap("delete", collection, key, err)
}
