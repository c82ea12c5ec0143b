// Package storage выгружает снапшоты турнирных сеток во внешнее
// объектное хранилище, чтобы их можно было раздавать без обращения к БД.
package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// SnapshotStore: хранилище JSON-снапшотов сеток.
type SnapshotStore interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
