package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned by Remove when the key is not present.
	// Removing a key twice is an error, not a no-op.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidKey is returned by Set when the key is empty.
	ErrInvalidKey = errors.New("invalid key: key cannot be empty")
)

// CorruptionError reports a record at an indexed location that did not
// decode to the set record the keydir promised. The keydir never points at
// tombstones, so hitting one here means the index and the log disagree.
type CorruptionError struct {
	Offset int64
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("log corruption detected at offset %d", e.Offset)
}

// CompactionError reports a compaction aborted before the log was replaced.
// The store keeps serving from its pre-compaction state.
type CompactionError struct {
	Err error
}

func (e *CompactionError) Error() string {
	return fmt.Sprintf("compaction failed: %v", e.Err)
}

func (e *CompactionError) Unwrap() error {
	return e.Err
}
