// Package wire frames a whole hash (field -> payload) as one byte blob so
// that plain byte stores can hold it and replace it in a single Set.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/unkn0wn-root/dictcache/internal/util"
)

const (
	version  byte = 1
	kindHash byte = 1

	hdrLen      = 4 + 1 + 1 + 4
	maxFieldLen = 0xFFFF
)

var (
	ErrCorrupt = errors.New("dictcache: corrupt hash blob")
	magic4     = [...]byte{'D', 'I', 'C', 'T'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// EncodeHash writes fields in ascending field order:
//
//	magic(4) | ver(1) | kind(1=hash) | n(u32 be)
//	fieldLen(u16 be) | field(fieldLen) | vlen(u32 be) | payload(vlen) * n
func EncodeHash(fields map[string][]byte) ([]byte, error) {
	names := util.SortedFields(fields)

	total := hdrLen
	for _, f := range names {
		if len(f) > maxFieldLen {
			return nil, fmt.Errorf("wire: field length %d exceeds %d", len(f), maxFieldLen)
		}
		total += 2 + len(f) + 4 + len(fields[f])
	}

	var buf bytes.Buffer
	buf.Grow(total)
	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindHash)

	var u4 [4]byte
	var u2 [2]byte

	binary.BigEndian.PutUint32(u4[:], uint32(len(names)))
	buf.Write(u4[:])

	for _, f := range names {
		binary.BigEndian.PutUint16(u2[:], uint16(len(f)))
		buf.Write(u2[:])
		buf.WriteString(f)

		p := fields[f]
		binary.BigEndian.PutUint32(u4[:], uint32(len(p)))
		buf.Write(u4[:])
		buf.Write(p)
	}
	return buf.Bytes(), nil
}

// DecodeHash parses a blob produced by EncodeHash. Trailing bytes, duplicate
// fields and truncated frames are rejected as ErrCorrupt.
// Payloads alias b.
func DecodeHash(b []byte) (map[string][]byte, error) {
	if len(b) < hdrLen || !hasMagic(b) || b[4] != version || b[5] != kindHash {
		return nil, ErrCorrupt
	}
	off := 6

	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// every field needs at least 6 bytes of framing
	if n > (len(b)-off)/6 {
		return nil, ErrCorrupt
	}

	out := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		if off+2 > len(b) {
			return nil, ErrCorrupt
		}
		flen := int(binary.BigEndian.Uint16(b[off : off+2]))
		off += 2
		if flen > len(b)-off {
			return nil, ErrCorrupt
		}
		field := string(b[off : off+flen])
		off += flen

		if off+4 > len(b) {
			return nil, ErrCorrupt
		}
		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || vlen > len(b)-off { // overflow-safe bound check
			return nil, ErrCorrupt
		}

		if _, dup := out[field]; dup {
			return nil, ErrCorrupt
		}
		out[field] = b[off : off+vlen]
		off += vlen
	}

	if off != len(b) {
		return nil, ErrCorrupt
	}
	return out, nil
}

// DecodeField returns one field of an encoded hash.
func DecodeField(b []byte, field string) ([]byte, bool, error) {
	m, err := DecodeHash(b)
	if err != nil {
		return nil, false, err
	}
	p, ok := m[field]
	return p, ok, nil
}
