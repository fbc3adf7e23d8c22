package store

import (
	"context"
	"strings"
)

// Store persists run artifacts (tables, reports, traces) under a name.
type Store interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
}

// Open resolves a store URI. A "redis://host:port" URI connects to a redis
// instance, anything else is a directory path.
func Open(uri string) (Store, error) {
	if strings.HasPrefix(uri, "redis://") {
		return NewRedisStore(strings.TrimPrefix(uri, "redis://")), nil
	}
	return NewFileStore(uri)
}
