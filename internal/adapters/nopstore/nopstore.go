// Package nopstore provides a storage adapter for environments without
// durable storage. Every operation succeeds and nothing persists, so the
// session layer degrades to "no session" instead of failing.
package nopstore

import (
	"context"

	"github.com/mocksmith/adminctl/internal/ports"
)

// Store discards writes and reports every key as absent.
type Store struct{}

var _ ports.Storage = Store{}

// New creates a Store.
func New() Store { return Store{} }

func (Store) Read(context.Context, string) (string, error) {
	return "", ports.ErrNotFound
}

func (Store) Write(context.Context, string, string) error { return nil }

func (Store) Delete(context.Context, string) error { return nil }
