package blockcipher

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"golang.org/x/crypto/twofish"
)

func TestAES256KnownAnswer(t *testing.T) {
	// FIPS-197 style vector: all-zero key, all-zero block.
	sched, err := AES256().NewSchedule(make([]byte, KeySize))
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	block := make([]byte, BlockSize)
	sched.Encrypt(block, block)

	want, _ := hex.DecodeString("dc95c078a2408989ad48a21492842087")
	if !bytes.Equal(block, want) {
		t.Fatalf("got %x, want %x", block, want)
	}
}

func TestTwofish256MatchesLibrary(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	sched, err := Twofish256().NewSchedule(key)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	ref, err := twofish.NewCipher(key)
	if err != nil {
		t.Fatalf("twofish.NewCipher: %v", err)
	}

	got := []byte("0123456789abcdef")
	want := append([]byte(nil), got...)
	sched.Encrypt(got, got)
	ref.Encrypt(want, want)
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestNewScheduleRejectsKeySize(t *testing.T) {
	for _, c := range []Cipher{AES256(), Twofish256()} {
		for _, n := range []int{0, 16, 24, 31, 33} {
			if _, err := c.NewSchedule(make([]byte, n)); !errors.Is(err, ErrInvalidKeySize) {
				t.Fatalf("%s with %d-byte key: expected ErrInvalidKeySize, got %v", c.Name(), n, err)
			}
		}
		if _, err := c.NewSchedule(nil); !errors.Is(err, ErrInvalidKeySize) {
			t.Fatalf("%s with nil key: expected ErrInvalidKeySize, got %v", c.Name(), err)
		}
	}
}

func TestByName(t *testing.T) {
	cases := map[string]string{
		"aes":         "aes-256",
		"AES-256":     "aes-256",
		"":            "aes-256",
		"twofish":     "twofish-256",
		" Twofish256": "twofish-256",
	}
	for in, want := range cases {
		c, err := ByName(in)
		if err != nil {
			t.Fatalf("ByName(%q): %v", in, err)
		}
		if c.Name() != want {
			t.Fatalf("ByName(%q) = %s, want %s", in, c.Name(), want)
		}
	}

	if _, err := ByName("serpent"); !errors.Is(err, ErrUnknownCipher) {
		t.Fatalf("expected ErrUnknownCipher, got %v", err)
	}
}

func BenchmarkAES256Encrypt(b *testing.B) {
	sched, _ := AES256().NewSchedule(make([]byte, KeySize))
	block := make([]byte, BlockSize)
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sched.Encrypt(block, block)
	}
}
