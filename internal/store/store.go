// Package store persists the application state as string values under a
// small set of well-known keys.
package store

import "context"

// Keys under which the session persists its state.
const (
	KeyChecklist = "mainChecklist"
	KeyEvent     = "eventInfo"
	KeyHistory   = "templateViewHistory"
)

// KV is a synchronous string key-value store.
type KV interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
