package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := LoadOptions("", "./somewhere")
	if err != nil {
		t.Fatal(err)
	}
	if opts.DataDir != "./somewhere" {
		t.Errorf("DataDir=%q, want %q", opts.DataDir, "./somewhere")
	}
	if opts.LogFilename != defaultLogFilename {
		t.Errorf("LogFilename=%q, want %q", opts.LogFilename, defaultLogFilename)
	}
	if opts.CompactionThreshold != defaultCompactionThreshold {
		t.Errorf("CompactionThreshold=%d, want %d", opts.CompactionThreshold, defaultCompactionThreshold)
	}
	if !opts.Fsync {
		t.Error("Fsync should default to on")
	}
}

func TestLoadOptionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casklog.yml")
	content := "log_filename: custom.db\ncompaction_threshold: 2048\nfsync: false\n"
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path, "./data")
	if err != nil {
		t.Fatal(err)
	}
	if opts.LogFilename != "custom.db" {
		t.Errorf("LogFilename=%q, want %q", opts.LogFilename, "custom.db")
	}
	if opts.CompactionThreshold != 2048 {
		t.Errorf("CompactionThreshold=%d, want 2048", opts.CompactionThreshold)
	}
	if opts.Fsync {
		t.Error("Fsync should be off")
	}
	// Fields absent from the file keep their defaults.
	if opts.DataDir != "./data" {
		t.Errorf("DataDir=%q, want %q", opts.DataDir, "./data")
	}
}

func TestLoadOptionsRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "casklog.yml")
	if err := os.WriteFile(path, []byte("bogus_field: 1\n"), 0666); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOptions(path, "./data"); err == nil {
		t.Error("expected strict parsing to reject unknown fields")
	}
}
