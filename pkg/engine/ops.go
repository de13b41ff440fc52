// This file implements the operational methods of the Engine. Every
// mutation is encoded, appended to the log, and flushed before the keydir
// is updated, so a completed call is durable by the time it returns.
package engine

import (
	"github.com/mlutzke/casklog/pkg/metrics"
	"github.com/mlutzke/casklog/pkg/persistence"
)

// Set stores a key-value pair. Overwriting a key marks the superseded
// record as reclaimable; if the stale-byte budget is exceeded the write
// also pays for a synchronous compaction before returning.
func (e *Engine) Set(key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	data, err := persistence.EncodeRecord(persistence.Record{
		Op:    persistence.OpSet,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return err
	}

	ptr, err := e.log.Append(data)
	if err != nil {
		return err
	}

	if old, ok := e.keydir.Set(key, ptr); ok {
		e.uncompacted += old.Length
	}

	metrics.WritesTotal.WithLabelValues("set").Inc()
	metrics.LiveKeys.Set(float64(e.keydir.Len()))
	metrics.UncompactedBytes.Set(float64(e.uncompacted))

	return e.maybeCompact()
}

// Get returns the current value for key; the second return value reports
// whether the key exists. Get never mutates the store. Finding anything but
// a set record at an indexed offset is surfaced as a CorruptionError rather
// than silently recovered.
func (e *Engine) Get(key string) (string, bool, error) {
	ptr, ok := e.keydir.Get(key)
	if !ok {
		return "", false, nil
	}

	data, err := e.log.ReadAt(ptr)
	if err != nil {
		return "", false, err
	}

	rec, err := persistence.DecodeRecord(data)
	if err != nil || rec.Op != persistence.OpSet {
		return "", false, &CorruptionError{Offset: ptr.Offset}
	}
	return rec.Value, true, nil
}

// Remove deletes key by appending a tombstone. The tombstone itself is
// stale the moment it is written: once the key leaves the keydir nothing
// will ever read it back, so its bytes count toward the compaction budget
// together with the record it kills.
func (e *Engine) Remove(key string) error {
	if _, ok := e.keydir.Get(key); !ok {
		return ErrKeyNotFound
	}

	data, err := persistence.EncodeRecord(persistence.Record{
		Op:  persistence.OpRemove,
		Key: key,
	})
	if err != nil {
		return err
	}

	ptr, err := e.log.Append(data)
	if err != nil {
		return err
	}

	if old, ok := e.keydir.Delete(key); ok {
		e.uncompacted += old.Length + ptr.Length
	}

	metrics.WritesTotal.WithLabelValues("rm").Inc()
	metrics.LiveKeys.Set(float64(e.keydir.Len()))
	metrics.UncompactedBytes.Set(float64(e.uncompacted))

	return e.maybeCompact()
}

// maybeCompact runs a compaction when the stale-byte budget is exceeded.
// Compaction is part of the triggering write's latency, never deferred.
func (e *Engine) maybeCompact() error {
	if e.uncompacted > e.threshold {
		return e.Compact()
	}
	return nil
}
