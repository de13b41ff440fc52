package engine

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/mlutzke/casklog/pkg/persistence"
)

// rebuildKeydir replays every record in the log from offset 0, in write
// order, and reconstructs the keydir. A record that fails to decode is
// treated as corruption: it is skipped with a warning instead of failing
// the whole open, favoring a store that comes up degraded over one that
// refuses to start. Skipped bytes end up in the stale count.
func (e *Engine) rebuildKeydir() error {
	file, err := e.log.Reader()
	if err != nil {
		return err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	var offset, totalBytes, liveBytes int64

	for {
		line, readErr := reader.ReadBytes('\n')
		if len(line) == 0 && readErr == io.EOF {
			break
		}
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("failed to scan log: %w", readErr)
		}

		length := int64(len(line))

		rec, decErr := persistence.DecodeRecord(line)
		if decErr != nil {
			// A truncated tail from a crashed write lands here too.
			slog.Warn("skipping corrupted log entry", "offset", offset, "error", decErr)
		} else {
			switch rec.Op {
			case persistence.OpSet:
				ptr := persistence.Pointer{Offset: offset, Length: length}
				if old, ok := e.keydir.Set(rec.Key, ptr); ok {
					liveBytes -= old.Length
				}
				liveBytes += length
			case persistence.OpRemove:
				if old, ok := e.keydir.Delete(rec.Key); ok {
					liveBytes -= old.Length
				}
			}
		}

		totalBytes += length
		offset += length

		if readErr == io.EOF {
			break
		}
	}

	e.uncompacted = totalBytes - liveBytes
	return nil
}
