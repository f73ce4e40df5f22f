package kdf

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TheusHen/keystretch/keystretch/stretch"
)

// AESUUID identifies the AES-KDF engine.
var AESUUID = uuid.UUID{
	0xC9, 0xD9, 0xF3, 0x9A, 0x62, 0x8A, 0x44, 0x60,
	0xBF, 0x74, 0x0D, 0x08, 0xC1, 0x8A, 0x4F, 0xEA,
}

const (
	// AESRounds holds the round count (uint64).
	AESRounds = "R"
	// AESSeed holds the 32-byte transform seed.
	AESSeed = "S"

	// DefaultRounds is the round count used when nothing was calibrated.
	DefaultRounds uint64 = 6000
)

// AESEngine derives keys with stretch.Transform followed by SHA-256.
type AESEngine struct {
	stretcher *stretch.Stretcher
}

// NewAESEngine creates an AES-KDF engine. Options select the block cipher and
// the calibration clock; the defaults are AES-256 and the system clock.
func NewAESEngine(opts ...stretch.Option) *AESEngine {
	return &AESEngine{stretcher: stretch.New(opts...)}
}

func (e *AESEngine) UUID() uuid.UUID { return AESUUID }
func (e *AESEngine) Name() string    { return "AES-KDF" }

func (e *AESEngine) DefaultParameters() *Parameters {
	p := NewParameters(AESUUID)
	p.SetUInt64(AESRounds, DefaultRounds)
	return p
}

func (e *AESEngine) Randomize(p *Parameters) error {
	if p == nil {
		return ErrNilInput
	}
	seed, err := randomBytes(stretch.SeedSize)
	if err != nil {
		return err
	}
	p.SetBytes(AESSeed, seed)
	return nil
}

// Transform normalises msg and the seed to 32 bytes with SHA-256 when they
// have another length, stretches a copy of msg and returns SHA-256 of the
// result.
func (e *AESEngine) Transform(msg []byte, p *Parameters) ([]byte, error) {
	if err := checkInput(e, msg, p); err != nil {
		return nil, err
	}

	switch p.TypeOf(AESRounds) {
	case KindNone:
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, AESRounds)
	case KindUInt64:
	default:
		return nil, fmt.Errorf("%w: %s is %s, want uint64", ErrParameterType, AESRounds, p.TypeOf(AESRounds))
	}
	rounds, _ := p.GetUInt64(AESRounds)

	seed, ok := p.GetBytes(AESSeed)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingParameter, AESSeed)
	}
	if len(seed) != stretch.SeedSize {
		sum := sha256.Sum256(seed)
		seed = sum[:]
	}

	var key [stretch.BufferSize]byte
	defer clear(key[:])
	if len(msg) == stretch.BufferSize {
		copy(key[:], msg)
	} else {
		key = sha256.Sum256(msg)
	}

	if err := e.stretcher.Transform(key[:], seed, rounds); err != nil {
		return nil, err
	}
	out := sha256.Sum256(key[:])
	return out[:], nil
}

// BestParameters calibrates the round count for budget. The seed is left
// unset; call Randomize before using the result.
func (e *AESEngine) BestParameters(budget time.Duration) (*Parameters, error) {
	p := e.DefaultParameters()

	buf := make([]byte, stretch.BufferSize)
	seed := make([]byte, stretch.SeedSize)
	for i := range buf {
		buf[i] = byte(i)
		seed[i] = byte(i)
	}

	rounds, err := e.stretcher.Calibrate(buf, seed, budget)
	if err != nil {
		return nil, err
	}
	p.SetUInt64(AESRounds, rounds)
	return p, nil
}
