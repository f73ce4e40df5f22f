package kdf

import (
	"sort"

	"github.com/google/uuid"
)

// Kind is the type tag of a parameter value. The numeric values are the
// type bytes of the binary encoding.
type Kind byte

const (
	KindNone   Kind = 0x00
	KindUInt32 Kind = 0x04
	KindUInt64 Kind = 0x05
	KindBool   Kind = 0x08
	KindInt32  Kind = 0x0C
	KindInt64  Kind = 0x0D
	KindString Kind = 0x18
	KindBytes  Kind = 0x42
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUInt32:
		return "uint32"
	case KindUInt64:
		return "uint64"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// UUIDKey is the dictionary key under which the engine UUID is encoded.
const UUIDKey = "$UUID"

// Parameters is a typed key/value dictionary bound to an engine UUID.
// The zero value is ready to use.
type Parameters struct {
	UUID  uuid.UUID
	items map[string]any
}

// NewParameters creates an empty dictionary for the engine id.
func NewParameters(id uuid.UUID) *Parameters {
	return &Parameters{UUID: id, items: map[string]any{}}
}

func (p *Parameters) set(key string, v any) {
	if p.items == nil {
		p.items = map[string]any{}
	}
	p.items[key] = v
}

func (p *Parameters) SetUInt32(key string, v uint32) { p.set(key, v) }
func (p *Parameters) SetUInt64(key string, v uint64) { p.set(key, v) }
func (p *Parameters) SetBool(key string, v bool)     { p.set(key, v) }
func (p *Parameters) SetInt32(key string, v int32)   { p.set(key, v) }
func (p *Parameters) SetInt64(key string, v int64)   { p.set(key, v) }
func (p *Parameters) SetString(key string, v string) { p.set(key, v) }

// SetBytes stores a copy of v.
func (p *Parameters) SetBytes(key string, v []byte) {
	p.set(key, append([]byte{}, v...))
}

func get[T any](p *Parameters, key string) (T, bool) {
	v, ok := p.items[key].(T)
	return v, ok
}

func (p *Parameters) GetUInt32(key string) (uint32, bool) { return get[uint32](p, key) }
func (p *Parameters) GetUInt64(key string) (uint64, bool) { return get[uint64](p, key) }
func (p *Parameters) GetBool(key string) (bool, bool)     { return get[bool](p, key) }
func (p *Parameters) GetInt32(key string) (int32, bool)   { return get[int32](p, key) }
func (p *Parameters) GetInt64(key string) (int64, bool)   { return get[int64](p, key) }
func (p *Parameters) GetString(key string) (string, bool) { return get[string](p, key) }

// GetBytes returns a copy of the byte value stored under key.
func (p *Parameters) GetBytes(key string) ([]byte, bool) {
	v, ok := get[[]byte](p, key)
	if !ok {
		return nil, false
	}
	return append([]byte{}, v...), true
}

// TypeOf reports the kind of the value stored under key, or KindNone.
func (p *Parameters) TypeOf(key string) Kind {
	switch p.items[key].(type) {
	case uint32:
		return KindUInt32
	case uint64:
		return KindUInt64
	case bool:
		return KindBool
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case string:
		return KindString
	case []byte:
		return KindBytes
	default:
		return KindNone
	}
}

// Remove deletes key.
func (p *Parameters) Remove(key string) { delete(p.items, key) }

// Len returns the number of stored values, not counting the UUID.
func (p *Parameters) Len() int { return len(p.items) }

// Keys returns the stored keys in sorted order.
func (p *Parameters) Keys() []string {
	keys := make([]string, 0, len(p.items))
	for k := range p.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (p *Parameters) Clone() *Parameters {
	c := NewParameters(p.UUID)
	for k, v := range p.items {
		if b, ok := v.([]byte); ok {
			v = append([]byte{}, b...)
		}
		c.items[k] = v
	}
	return c
}
