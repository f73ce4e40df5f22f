package kdf

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersTypedValues(t *testing.T) {
	p := NewParameters(AESUUID)
	p.SetUInt32("u32", 7)
	p.SetUInt64("u64", 1<<40)
	p.SetBool("b", true)
	p.SetInt32("i32", -3)
	p.SetInt64("i64", -1<<40)
	p.SetString("s", "hello")
	p.SetBytes("raw", []byte{1, 2, 3})

	u32, ok := p.GetUInt32("u32")
	require.True(t, ok)
	assert.Equal(t, uint32(7), u32)

	u64, ok := p.GetUInt64("u64")
	require.True(t, ok)
	assert.Equal(t, uint64(1<<40), u64)

	b, ok := p.GetBool("b")
	require.True(t, ok)
	assert.True(t, b)

	i32, ok := p.GetInt32("i32")
	require.True(t, ok)
	assert.Equal(t, int32(-3), i32)

	i64, ok := p.GetInt64("i64")
	require.True(t, ok)
	assert.Equal(t, int64(-1<<40), i64)

	s, ok := p.GetString("s")
	require.True(t, ok)
	assert.Equal(t, "hello", s)

	raw, ok := p.GetBytes("raw")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, raw)

	assert.Equal(t, 7, p.Len())
	assert.Equal(t, []string{"b", "i32", "i64", "raw", "s", "u32", "u64"}, p.Keys())
}

func TestParametersTypeMismatch(t *testing.T) {
	p := NewParameters(AESUUID)
	p.SetUInt32(AESRounds, 10)

	_, ok := p.GetUInt64(AESRounds)
	assert.False(t, ok)
	assert.Equal(t, KindUInt32, p.TypeOf(AESRounds))
	assert.Equal(t, KindNone, p.TypeOf("missing"))

	p.Remove(AESRounds)
	assert.Equal(t, 0, p.Len())
}

func TestParametersBytesAreCopied(t *testing.T) {
	p := NewParameters(AESUUID)
	in := []byte{1, 2, 3}
	p.SetBytes("k", in)
	in[0] = 9

	out, _ := p.GetBytes("k")
	assert.Equal(t, byte(1), out[0])
	out[1] = 9

	again, _ := p.GetBytes("k")
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestParametersZeroValue(t *testing.T) {
	var p Parameters
	_, ok := p.GetUInt64("x")
	assert.False(t, ok)
	p.SetUInt64("x", 1)
	v, ok := p.GetUInt64("x")
	require.True(t, ok)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, uuid.Nil, p.UUID)
}

func TestParametersClone(t *testing.T) {
	p := NewParameters(Argon2idUUID)
	p.SetBytes(Argon2Salt, []byte("saltsalt"))
	p.SetUInt64(Argon2Iterations, 3)

	c := p.Clone()
	c.SetUInt64(Argon2Iterations, 4)
	c.SetBytes(Argon2Salt, []byte("different"))

	it, _ := p.GetUInt64(Argon2Iterations)
	assert.Equal(t, uint64(3), it)
	salt, _ := p.GetBytes(Argon2Salt)
	assert.Equal(t, []byte("saltsalt"), salt)
	assert.Equal(t, p.UUID, c.UUID)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "uint64", KindUInt64.String())
	assert.Equal(t, "bytes", KindBytes.String())
	assert.Equal(t, "unknown", Kind(0x99).String())
}
