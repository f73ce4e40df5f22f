package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/twofish"
)

const (
	// KeySize is the schedule key size in bytes (256 bits).
	KeySize = 32
	// BlockSize is the cipher block size in bytes (128 bits).
	BlockSize = 16
)

var (
	ErrInvalidKeySize   = errors.New("blockcipher: key must be 32 bytes")
	ErrInvalidBlockSize = errors.New("blockcipher: cipher block size must be 16 bytes")
	ErrUnknownCipher    = errors.New("blockcipher: unknown cipher")
)

// Cipher derives encryption schedules from 256-bit keys.
// The returned cipher.Block is the schedule; its Encrypt method performs a
// single forward block transformation and may be called with dst == src.
type Cipher interface {
	Name() string
	NewSchedule(key []byte) (cipher.Block, error)
}

type blockFunc func(key []byte) (cipher.Block, error)

type namedCipher struct {
	name string
	newf blockFunc
}

func (c namedCipher) Name() string { return c.name }

func (c namedCipher) NewSchedule(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKeySize, len(key))
	}
	b, err := c.newf(key)
	if err != nil {
		return nil, err
	}
	if b.BlockSize() != BlockSize {
		return nil, fmt.Errorf("%w: %s has %d", ErrInvalidBlockSize, c.name, b.BlockSize())
	}
	return b, nil
}

var (
	aes256 = namedCipher{name: "aes-256", newf: aes.NewCipher}

	twofish256 = namedCipher{name: "twofish-256", newf: func(key []byte) (cipher.Block, error) {
		return twofish.NewCipher(key)
	}}
)

// AES256 returns the AES-256 capability. It is the reference cipher.
func AES256() Cipher { return aes256 }

// Twofish256 returns the Twofish-256 capability.
func Twofish256() Cipher { return twofish256 }

// ByName resolves a cipher by name. Matching is case-insensitive and accepts
// the short forms "aes" and "twofish".
func ByName(name string) (Cipher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "aes", "aes-256", "aes256", "":
		return aes256, nil
	case "twofish", "twofish-256", "twofish256":
		return twofish256, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, name)
	}
}

// Names lists the canonical names of the built-in ciphers.
func Names() []string {
	return []string{aes256.name, twofish256.name}
}
