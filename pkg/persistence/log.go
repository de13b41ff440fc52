package persistence

import (
	"fmt"
	"os"
	"sync"
)

// Pointer locates exactly one encoded record inside the log file. A pointer
// is only valid as long as the file it was issued against has not been
// replaced by a rewrite.
type Pointer struct {
	Offset int64
	Length int64
}

// Log manages the append-only data file. A single handle is kept open for
// appends; every read opens an independent cursor so reads never disturb the
// writer position or each other.
type Log struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	size  int64
	fsync bool
}

// OpenLog opens or creates the log file at path and positions the writer at
// the current end of file. With fsync enabled every append is forced to disk
// before it returns.
func OpenLog(path string, fsync bool) (*Log, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &Log{
		file:  file,
		path:  path,
		size:  info.Size(),
		fsync: fsync,
	}, nil
}

// Append writes data at the end of the log and flushes it before returning.
// The returned pointer addresses exactly the bytes just written.
func (l *Log) Append(data []byte) (Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.file.Write(data)
	if err != nil {
		return Pointer{}, fmt.Errorf("log append: %w", err)
	}
	if l.fsync {
		if err := l.file.Sync(); err != nil {
			return Pointer{}, fmt.Errorf("log sync: %w", err)
		}
	}

	ptr := Pointer{Offset: l.size, Length: int64(n)}
	l.size += int64(n)
	return ptr, nil
}

// ReadAt returns the exact bytes addressed by ptr. Each call opens its own
// read-only handle.
func (l *Log) ReadAt(ptr Pointer) ([]byte, error) {
	reader, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("log read: %w", err)
	}
	defer reader.Close()

	buf := make([]byte, ptr.Length)
	if _, err := reader.ReadAt(buf, ptr.Offset); err != nil {
		return nil, fmt.Errorf("log read at offset %d: %w", ptr.Offset, err)
	}
	return buf, nil
}

// Reader opens an independent sequential cursor over the whole log,
// positioned at offset 0. The caller owns closing it.
func (l *Log) Reader() (*os.File, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log for reading: %w", err)
	}
	return file, nil
}

// ReplaceWith atomically substitutes the log file with the file at newPath
// (rename over the old path) and reopens the append handle on the result.
// Used at the end of a rewrite.
func (l *Log) ReplaceWith(newPath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Rename before touching the append handle: if the replace fails the
	// log must stay writable on its old contents. The rename does not need
	// the destination closed; the old handle keeps addressing the replaced
	// inode until it is swapped out below.
	if err := os.Rename(newPath, l.path); err != nil {
		return fmt.Errorf("failed to replace log file: %w", err)
	}

	_ = l.file.Close()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("failed to reopen log after replace: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to stat log after replace: %w", err)
	}

	l.file = file
	l.size = info.Size()
	return nil
}

// Size returns the current length of the log in bytes.
func (l *Log) Size() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Close closes the append handle.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
