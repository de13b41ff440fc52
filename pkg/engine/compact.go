package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mlutzke/casklog/internal/store"
	"github.com/mlutzke/casklog/pkg/metrics"
	"github.com/mlutzke/casklog/pkg/persistence"
)

// Compact rewrites the log so that it contains exactly the records the
// keydir currently points to: superseded values and tombstones are never
// copied. Live records go byte for byte into a temporary file in the data
// directory, which then replaces the log via rename. Any failure before the
// rename leaves the original log untouched and the store keeps serving from
// its pre-compaction state.
func (e *Engine) Compact() error {
	tmpPath := filepath.Join(e.opts.DataDir, "rewrite-"+uuid.NewString()+".tmp")

	newKeydir, err := e.copyLiveRecords(tmpPath)
	if err != nil {
		_ = os.Remove(tmpPath)
		return &CompactionError{Err: err}
	}

	if err := e.log.ReplaceWith(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return &CompactionError{Err: err}
	}

	reclaimed := e.uncompacted
	e.keydir = newKeydir
	e.uncompacted = 0

	metrics.CompactionsTotal.Inc()
	metrics.UncompactedBytes.Set(0)
	slog.Info("log compacted",
		"path", e.log.Path(),
		"reclaimed_bytes", reclaimed,
		"live_keys", newKeydir.Len())
	return nil
}

// copyLiveRecords writes every record referenced by the keydir into a new
// file at tmpPath and returns the keydir describing the rewritten layout.
// Records are visited in key order; the on-disk order after a rewrite is an
// implementation detail, not a contract.
func (e *Engine) copyLiveRecords(tmpPath string) (*store.Keydir, error) {
	out, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create rewrite file: %w", err)
	}
	defer out.Close()

	newKeydir := store.NewKeydir()
	var pos int64
	var copyErr error

	e.keydir.Scan(func(key string, ptr persistence.Pointer) bool {
		data, err := e.log.ReadAt(ptr)
		if err != nil {
			copyErr = err
			return false
		}
		if _, err := out.Write(data); err != nil {
			copyErr = fmt.Errorf("failed to write rewrite file: %w", err)
			return false
		}
		newKeydir.Set(key, persistence.Pointer{Offset: pos, Length: ptr.Length})
		pos += ptr.Length
		return true
	})
	if copyErr != nil {
		return nil, copyErr
	}

	if err := out.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync rewrite file: %w", err)
	}
	return newKeydir, nil
}
