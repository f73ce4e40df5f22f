package kdf

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DictionaryVersion is the encoding version written by Marshal.
	DictionaryVersion = uint16(0x0100)

	versionCriticalMask = uint16(0xFF00)
)

// Marshal encodes the dictionary.
// Format (little endian):
//
//	2 bytes: version
//	For each item, sorted by key, UUIDKey first:
//		1 byte: kind
//		4 bytes: key length
//		N bytes: key (UTF-8)
//		4 bytes: value length
//		N bytes: value
//	1 byte: 0x00 terminator
//
// The engine UUID is written as a 16-byte value under UUIDKey; an item
// stored under that key is ignored.
func (p *Parameters) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = binary.LittleEndian.AppendUint16(buf, DictionaryVersion)
	buf = appendItem(buf, KindBytes, UUIDKey, p.UUID[:])

	for _, key := range p.Keys() {
		if key == UUIDKey {
			continue
		}
		if !utf8.ValidString(key) {
			return nil, fmt.Errorf("%w: key %q is not valid UTF-8", ErrMalformedParameters, key)
		}
		var value []byte
		switch v := p.items[key].(type) {
		case uint32:
			value = binary.LittleEndian.AppendUint32(nil, v)
		case uint64:
			value = binary.LittleEndian.AppendUint64(nil, v)
		case bool:
			value = []byte{0}
			if v {
				value[0] = 1
			}
		case int32:
			value = binary.LittleEndian.AppendUint32(nil, uint32(v))
		case int64:
			value = binary.LittleEndian.AppendUint64(nil, uint64(v))
		case string:
			value = []byte(v)
		case []byte:
			value = v
		}
		if len(value) > math.MaxInt32 {
			return nil, fmt.Errorf("%w: value of %q too large", ErrMalformedParameters, key)
		}
		buf = appendItem(buf, p.TypeOf(key), key, value)
	}

	return append(buf, byte(KindNone)), nil
}

func appendItem(buf []byte, kind Kind, key string, value []byte) []byte {
	buf = append(buf, byte(kind))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(key)))
	buf = append(buf, key...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(value)))
	return append(buf, value...)
}

// UnmarshalParameters decodes a dictionary produced by Marshal.
// Later duplicates of a key win. Data after the terminator is ignored.
func UnmarshalParameters(data []byte) (*Parameters, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: too short", ErrMalformedParameters)
	}
	version := binary.LittleEndian.Uint16(data[:2])
	if version&versionCriticalMask > DictionaryVersion&versionCriticalMask {
		return nil, fmt.Errorf("%w: 0x%04x", ErrUnsupportedVersion, version)
	}

	p := NewParameters(uuid.Nil)
	offset := 2
	for {
		if offset >= len(data) {
			return nil, fmt.Errorf("%w: missing terminator", ErrMalformedParameters)
		}
		kind := Kind(data[offset])
		offset++
		if kind == KindNone {
			break
		}

		key, n, err := readField(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		value, n, err := readField(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n

		if err := p.decodeValue(kind, string(key), value); err != nil {
			return nil, err
		}
	}

	raw, ok := get[[]byte](p, UUIDKey)
	if !ok {
		return nil, ErrMissingUUID
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingUUID, err)
	}
	p.UUID = id
	p.Remove(UUIDKey)
	return p, nil
}

// readField reads a 4-byte length prefix and the bytes it covers.
func readField(data []byte) ([]byte, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: truncated length", ErrMalformedParameters)
	}
	n := binary.LittleEndian.Uint32(data[:4])
	if n > math.MaxInt32 || int(n) > len(data)-4 {
		return nil, 0, fmt.Errorf("%w: field length %d exceeds data", ErrMalformedParameters, n)
	}
	field := make([]byte, n)
	copy(field, data[4:4+int(n)])
	return field, 4 + int(n), nil
}

func (p *Parameters) decodeValue(kind Kind, key string, value []byte) error {
	want := map[Kind]int{
		KindUInt32: 4,
		KindUInt64: 8,
		KindBool:   1,
		KindInt32:  4,
		KindInt64:  8,
	}
	if size, fixed := want[kind]; fixed && len(value) != size {
		return fmt.Errorf("%w: %s value of %q is %d bytes", ErrMalformedParameters, kind, key, len(value))
	}

	switch kind {
	case KindUInt32:
		p.SetUInt32(key, binary.LittleEndian.Uint32(value))
	case KindUInt64:
		p.SetUInt64(key, binary.LittleEndian.Uint64(value))
	case KindBool:
		p.SetBool(key, value[0] != 0)
	case KindInt32:
		p.SetInt32(key, int32(binary.LittleEndian.Uint32(value)))
	case KindInt64:
		p.SetInt64(key, int64(binary.LittleEndian.Uint64(value)))
	case KindString:
		p.SetString(key, string(value))
	case KindBytes:
		p.set(key, value)
	default:
		return fmt.Errorf("%w: unknown kind 0x%02x for %q", ErrMalformedParameters, byte(kind), key)
	}
	return nil
}
