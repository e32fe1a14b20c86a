package main

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadolammi/hrworkflow/internal/extract"
	"github.com/muhammadolammi/hrworkflow/internal/storage"
)

// retry retries a function up to `attempts` times with linear backoff
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		wait := time.Duration(500*(i+1)) * time.Millisecond
		time.Sleep(wait)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// downloader fetches an object by key.
type downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

// loadDocument extracts text from a local path or an r2://<key> source.
func loadDocument(ctx context.Context, store downloader, source string) (string, error) {
	key, remote := storage.ObjectKey(source)
	if !remote {
		return extract.File(source)
	}
	if store == nil {
		return "", fmt.Errorf("cannot load %s: R2 storage is not configured", source)
	}
	kind, err := extract.KindOf(key)
	if err != nil {
		return "", err
	}
	// network failures are transient
	data, err := retry(3, func() ([]byte, error) {
		return store.Download(ctx, key)
	})
	if err != nil {
		return "", fmt.Errorf("file download error: %w", err)
	}
	return extract.Bytes(kind, data)
}

func (a *appConfig) loader() func(ctx context.Context, source string) (string, error) {
	var store downloader
	if a.Storage != nil {
		store = a.Storage
	}
	return func(ctx context.Context, source string) (string, error) {
		return loadDocument(ctx, store, source)
	}
}
