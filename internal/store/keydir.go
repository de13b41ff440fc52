// Package store holds the in-memory side of the database: the keydir that
// maps every live key to the position of its latest record on disk.
package store

import (
	"github.com/tidwall/btree"

	"github.com/mlutzke/casklog/pkg/persistence"
)

const btreeDegree = 32

// Keydir is the in-memory index. For every key present it holds the pointer
// of the last set record not superseded by a later set or remove; removed
// keys are absent. It is rebuilt from the log on startup and is never the
// source of truth.
type Keydir struct {
	entries *btree.Map[string, persistence.Pointer]
}

// NewKeydir returns an empty keydir.
func NewKeydir() *Keydir {
	return &Keydir{
		entries: btree.NewMap[string, persistence.Pointer](btreeDegree),
	}
}

// Get returns the pointer for key, if present.
func (k *Keydir) Get(key string) (persistence.Pointer, bool) {
	return k.entries.Get(key)
}

// Set installs ptr for key and returns the pointer it displaced, if any.
func (k *Keydir) Set(key string, ptr persistence.Pointer) (persistence.Pointer, bool) {
	return k.entries.Set(key, ptr)
}

// Delete drops key and returns the pointer it held, if any.
func (k *Keydir) Delete(key string) (persistence.Pointer, bool) {
	return k.entries.Delete(key)
}

// Len returns the number of live keys.
func (k *Keydir) Len() int {
	return k.entries.Len()
}

// Scan visits every entry in ascending key order until iter returns false.
func (k *Keydir) Scan(iter func(key string, ptr persistence.Pointer) bool) {
	k.entries.Scan(iter)
}
