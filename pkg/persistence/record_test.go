package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordEncodeDecode(t *testing.T) {
	rec := Record{Op: OpSet, Key: "hello", Value: "I'm the value"}

	data, err := EncodeRecord(rec)
	require.NoError(t, err)
	require.Equal(t, byte('\n'), data[len(data)-1])

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, rec, decoded)
}

func TestTombstoneOmitsValue(t *testing.T) {
	data, err := EncodeRecord(Record{Op: OpRemove, Key: "gone"})
	require.NoError(t, err)
	require.NotContains(t, string(data), "value")

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, OpRemove, decoded.Op)
	require.Equal(t, "gone", decoded.Key)
}

func TestEncodingIsSelfDelimited(t *testing.T) {
	// A value carrying the terminator must not break the line framing.
	data, err := EncodeRecord(Record{Op: OpSet, Key: "k", Value: "line1\nline2"})
	require.NoError(t, err)

	body := data[:len(data)-1]
	require.NotContains(t, string(body), "\n")

	decoded, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, "line1\nline2", decoded.Value)
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":     "definitely not json\n",
		"unknown op":   `{"op":"frobnicate","key":"a"}` + "\n",
		"missing key":  `{"op":"set","value":"v"}` + "\n",
		"truncated":    `{"op":"set","key":"a","val`,
		"empty string": "",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(raw))
			require.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}
