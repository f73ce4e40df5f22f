package kdf

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Engine is a key derivation function configured by Parameters.
type Engine interface {
	// UUID identifies the engine in encoded parameter dictionaries.
	UUID() uuid.UUID
	Name() string
	// DefaultParameters returns a fresh dictionary with the engine defaults.
	// Random values (seeds, salts) are not included; see Randomize.
	DefaultParameters() *Parameters
	// Randomize replaces the random parts of p (seed or salt).
	Randomize(p *Parameters) error
	// Transform derives a 32-byte key from msg.
	Transform(msg []byte, p *Parameters) ([]byte, error)
	// BestParameters returns parameters whose cost roughly fills budget on
	// this machine. Whether random values are filled in is engine specific.
	BestParameters(budget time.Duration) (*Parameters, error)
}

// KeySize is the size of keys produced by the built-in engines.
const KeySize = 32

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("kdf: failed to read random bytes: %w", err)
	}
	return b, nil
}

func checkInput(e Engine, msg []byte, p *Parameters) error {
	if msg == nil || p == nil {
		return ErrNilInput
	}
	if p.UUID != e.UUID() {
		return fmt.Errorf("%w: %s is not %s", ErrEngineMismatch, p.UUID, e.Name())
	}
	return nil
}
