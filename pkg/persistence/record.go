package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Op identifies the kind of a log record. The set of operations is closed:
// every reader matches on it exhaustively.
type Op string

const (
	// OpSet records a key being written with a value.
	OpSet Op = "set"
	// OpRemove is a tombstone recording a key being deleted.
	OpRemove Op = "rm"
)

// ErrMalformedRecord indicates bytes that are not a valid record encoding.
var ErrMalformedRecord = errors.New("malformed record")

// Record is a single entry of the append log.
type Record struct {
	Op    Op     `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// EncodeRecord serializes a record as one JSON object terminated by '\n'.
// JSON escapes control characters, so the terminator can never appear inside
// the encoded body and each record stays independently decodable without any
// external framing.
func EncodeRecord(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeRecord is the inverse of EncodeRecord. A trailing newline is
// accepted. Anything that does not parse to a well-formed Set or Remove is
// reported as ErrMalformedRecord.
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	switch rec.Op {
	case OpSet, OpRemove:
	default:
		return Record{}, fmt.Errorf("%w: unknown op %q", ErrMalformedRecord, rec.Op)
	}
	if rec.Key == "" {
		return Record{}, fmt.Errorf("%w: empty key", ErrMalformedRecord)
	}
	return rec, nil
}
