// Package engine provides the embedded interface for casklog, a
// log-structured (Bitcask style) key-value store.
//
// Every mutation is appended to a single on-disk log; an in-memory keydir
// maps each key to the location of its most recent record. The log is the
// sole source of truth: the keydir is a derived cache rebuilt by replaying
// the log on Open. When the volume of stale bytes crosses a configurable
// threshold, the log is rewritten to contain only live records.
//
// Basic usage:
//
//	eng, err := engine.Open(engine.DefaultOptions("./data"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	eng.Set("name", "ada")
//	value, ok, err := eng.Get("name")
//
// An Engine assumes a single owner: concurrent calls from multiple
// goroutines, or a second Engine opened on the same directory, require
// external coordination. No advisory lock is taken on the data directory.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mlutzke/casklog/internal/store"
	"github.com/mlutzke/casklog/pkg/metrics"
	"github.com/mlutzke/casklog/pkg/persistence"
)

// Options configures the behavior of the Engine: where the log lives and
// when it gets compacted.
type Options struct {
	// DataDir is the directory holding the log file.
	// It is created automatically if it does not exist.
	DataDir string `yaml:"data_dir"`

	// LogFilename is the name of the log file inside DataDir
	// (default: "casklog.db").
	LogFilename string `yaml:"log_filename"`

	// CompactionThreshold is the number of stale bytes tolerated before a
	// write triggers a synchronous log rewrite (default: 1 MiB).
	CompactionThreshold int64 `yaml:"compaction_threshold"`

	// Fsync forces an fsync after every append. Disabling it trades crash
	// durability for write throughput (default: on).
	Fsync bool `yaml:"fsync"`
}

const (
	defaultLogFilename         = "casklog.db"
	defaultCompactionThreshold = 1024 * 1024
)

// DefaultOptions returns a standard configuration suitable for most uses:
// synchronous durability and a 1 MiB compaction budget.
func DefaultOptions(dataDir string) Options {
	return Options{
		DataDir:             dataDir,
		LogFilename:         defaultLogFilename,
		CompactionThreshold: defaultCompactionThreshold,
		Fsync:               true,
	}
}

// Engine is the main entry point for casklog. It ties the in-memory keydir
// to the on-disk append log.
//
// Use Open() to initialize an Engine and Close() to release it.
type Engine struct {
	opts Options

	log    *persistence.Log
	keydir *store.Keydir

	// uncompacted tracks the bytes of superseded records and tombstones
	// that a rewrite would reclaim.
	uncompacted int64
	threshold   int64

	closeOnce sync.Once
}

// Open initializes an Engine using the provided options.
//
// It creates DataDir if missing, opens (or creates) the log file, and
// rebuilds the keydir by replaying the log from the start. Individually
// corrupt records are skipped with a logged warning so that one bad entry
// does not prevent the rest of the store from opening.
func Open(opts Options) (*Engine, error) {
	if opts.LogFilename == "" {
		opts.LogFilename = defaultLogFilename
	}
	if opts.CompactionThreshold <= 0 {
		opts.CompactionThreshold = defaultCompactionThreshold
	}

	if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logPath := filepath.Join(opts.DataDir, opts.LogFilename)
	lg, err := persistence.OpenLog(logPath, opts.Fsync)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		opts:      opts,
		log:       lg,
		keydir:    store.NewKeydir(),
		threshold: opts.CompactionThreshold,
	}

	if err := e.rebuildKeydir(); err != nil {
		_ = lg.Close()
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}

	metrics.LiveKeys.Set(float64(e.keydir.Len()))
	metrics.UncompactedBytes.Set(float64(e.uncompacted))
	return e, nil
}

// Close releases the log file handle. Calling it more than once is safe.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		err = e.log.Close()
	})
	return err
}

// SetCompactionThreshold changes the stale-byte budget that triggers an
// automatic rewrite on the next write.
func (e *Engine) SetCompactionThreshold(bytes int64) {
	e.threshold = bytes
}

// Uncompacted returns the current estimate of reclaimable stale bytes.
func (e *Engine) Uncompacted() int64 {
	return e.uncompacted
}

// Len returns the number of live keys.
func (e *Engine) Len() int {
	return e.keydir.Len()
}
