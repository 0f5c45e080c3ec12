package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each collection in one hash: field = record key,
// value = JSON document.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, collection string) (map[string]Document, error) {
	fields, err := r.client.HGetAll(ctx, collection).Result()
	if err != nil {
		return nil, wrap("get", collection, "", err)
	}
	out := make(map[string]Document, len(fields))
	for key, raw := range fields {
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, wrap("get", collection, key, err)
		}
		out[key] = doc
	}
	return out, nil
}

func (r *Redis) Push(ctx context.Context, collection string, doc Document) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", wrap("push", collection, "", err)
	}
	key := newKey()
	if err := r.client.HSet(ctx, collection, key, raw).Err(); err != nil {
		return "", wrap("push", collection, key, err)
	}
	return key, nil
}

// Update merges fields into the stored document, creating it when missing.
func (r *Redis) Update(ctx context.Context, collection, key string, fields Document) error {
	var doc Document
	raw, err := r.client.HGet(ctx, collection, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return wrap("update", collection, key, err)
	default:
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return wrap("update", collection, key, err)
		}
	}

	merged, err := json.Marshal(merge(doc, fields))
	if err != nil {
		return wrap("update", collection, key, err)
	}
	if err := r.client.HSet(ctx, collection, key, merged).Err(); err != nil {
		return wrap("update", collection, key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, collection, key string) error {
	n, err := r.client.HDel(ctx, collection, key).Result()
	if err != nil {
		return wrap("delete", collection, key, err)
	}
	if n == 0 {
		return wrap("delete", collection, key, ErrNotFound)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context, collection string) error {
	return wrap("ping", collection, "", r.client.Ping(ctx).Err())
}
