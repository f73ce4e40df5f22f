package kdf

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/TheusHen/keystretch/keystretch/stretch"
)

// Argon2idUUID identifies the Argon2id engine.
var Argon2idUUID = uuid.UUID{
	0x9E, 0x29, 0x8B, 0x19, 0x56, 0xDB, 0x47, 0x73,
	0xB2, 0x3D, 0xFC, 0x3E, 0xC6, 0xF0, 0xA1, 0xE6,
}

const (
	Argon2Salt        = "S" // []byte
	Argon2Parallelism = "P" // uint32
	Argon2Memory      = "M" // uint64, bytes
	Argon2Iterations  = "I" // uint64
	Argon2Version     = "V" // uint32
	Argon2SecretKey   = "K" // []byte
	Argon2AssocData   = "A" // []byte
)

const (
	// Argon2VersionNumber is the only Argon2 version x/crypto implements.
	Argon2VersionNumber = uint32(argon2.Version)

	argon2MinSalt        = 8
	argon2MinIterations  = uint64(1)
	argon2MaxIterations  = uint64(math.MaxUint32)
	argon2MinMemory      = uint64(8 * 1024)
	argon2MaxMemory      = uint64(math.MaxInt32)
	argon2MinParallelism = uint32(1)
	argon2MaxParallelism = uint32(math.MaxUint8)
	argon2BlockSize      = 1024

	DefaultArgon2Iterations  = uint64(2)
	DefaultArgon2Memory      = uint64(64 * 1024 * 1024)
	DefaultArgon2Parallelism = uint32(2)
)

// Argon2Option configures an Argon2Engine.
type Argon2Option func(*Argon2Engine)

// WithArgon2Memory sets the default memory cost in bytes.
func WithArgon2Memory(bytes uint64) Argon2Option {
	return func(e *Argon2Engine) { e.memory = bytes }
}

// WithArgon2Parallelism sets the default number of lanes.
func WithArgon2Parallelism(lanes uint32) Argon2Option {
	return func(e *Argon2Engine) { e.parallelism = lanes }
}

// WithArgon2Clock sets the clock BestParameters measures with.
func WithArgon2Clock(c stretch.Clock) Argon2Option {
	return func(e *Argon2Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// Argon2Engine derives keys with Argon2id.
// Argon2d is not available because x/crypto does not implement it.
type Argon2Engine struct {
	memory      uint64
	parallelism uint32
	clock       stretch.Clock
}

// NewArgon2Engine creates an Argon2id engine.
func NewArgon2Engine(opts ...Argon2Option) *Argon2Engine {
	e := &Argon2Engine{
		memory:      DefaultArgon2Memory,
		parallelism: DefaultArgon2Parallelism,
		clock:       stretch.SystemClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Argon2Engine) UUID() uuid.UUID { return Argon2idUUID }
func (e *Argon2Engine) Name() string    { return "Argon2id" }

func (e *Argon2Engine) DefaultParameters() *Parameters {
	p := NewParameters(Argon2idUUID)
	p.SetUInt32(Argon2Version, Argon2VersionNumber)
	p.SetUInt64(Argon2Iterations, DefaultArgon2Iterations)
	p.SetUInt64(Argon2Memory, e.memory)
	p.SetUInt32(Argon2Parallelism, e.parallelism)
	return p
}

func (e *Argon2Engine) Randomize(p *Parameters) error {
	if p == nil {
		return ErrNilInput
	}
	salt, err := randomBytes(32)
	if err != nil {
		return err
	}
	p.SetBytes(Argon2Salt, salt)
	return nil
}

type argon2Config struct {
	salt        []byte
	iterations  uint32
	memoryKiB   uint32
	parallelism uint8
}

func (e *Argon2Engine) config(p *Parameters) (argon2Config, error) {
	salt, ok := p.GetBytes(Argon2Salt)
	if !ok {
		return argon2Config{}, fmt.Errorf("%w: %s", ErrMissingParameter, Argon2Salt)
	}
	if len(salt) < argon2MinSalt {
		return argon2Config{}, fmt.Errorf("%w: salt is %d bytes, want at least %d", ErrParameterRange, len(salt), argon2MinSalt)
	}

	par, _ := p.GetUInt32(Argon2Parallelism)
	if par < argon2MinParallelism || par > argon2MaxParallelism {
		return argon2Config{}, fmt.Errorf("%w: parallelism %d", ErrParameterRange, par)
	}
	mem, _ := p.GetUInt64(Argon2Memory)
	if mem < argon2MinMemory || mem > argon2MaxMemory {
		return argon2Config{}, fmt.Errorf("%w: memory %d", ErrParameterRange, mem)
	}
	it, _ := p.GetUInt64(Argon2Iterations)
	if it < argon2MinIterations || it > argon2MaxIterations {
		return argon2Config{}, fmt.Errorf("%w: iterations %d", ErrParameterRange, it)
	}

	v, _ := p.GetUInt32(Argon2Version)
	if v != Argon2VersionNumber {
		return argon2Config{}, fmt.Errorf("%w: version 0x%x", ErrUnsupported, v)
	}
	if k, _ := p.GetBytes(Argon2SecretKey); len(k) != 0 {
		return argon2Config{}, fmt.Errorf("%w: secret key", ErrUnsupported)
	}
	if a, _ := p.GetBytes(Argon2AssocData); len(a) != 0 {
		return argon2Config{}, fmt.Errorf("%w: associated data", ErrUnsupported)
	}

	return argon2Config{
		salt:        salt,
		iterations:  uint32(it),
		memoryKiB:   uint32(mem / argon2BlockSize),
		parallelism: uint8(par),
	}, nil
}

func (e *Argon2Engine) Transform(msg []byte, p *Parameters) ([]byte, error) {
	if err := checkInput(e, msg, p); err != nil {
		return nil, err
	}
	c, err := e.config(p)
	if err != nil {
		return nil, err
	}
	return argon2.IDKey(msg, c.salt, c.iterations, c.memoryKiB, c.parallelism, KeySize), nil
}

// BestParameters doubles the iteration count, starting at one, for as long
// as a trial derivation stays within budget. Memory and parallelism keep the
// engine defaults.
func (e *Argon2Engine) BestParameters(budget time.Duration) (*Parameters, error) {
	p := e.DefaultParameters()
	if err := e.Randomize(p); err != nil {
		return nil, err
	}

	probe := make([]byte, KeySize)
	best := argon2MinIterations
	for it := argon2MinIterations; it <= argon2MaxIterations; it *= 2 {
		p.SetUInt64(Argon2Iterations, it)
		elapsed, err := e.measure(probe, p)
		if err != nil {
			return nil, err
		}
		if elapsed > budget {
			break
		}
		best = it
	}

	p.SetUInt64(Argon2Iterations, best)
	return p, nil
}

func (e *Argon2Engine) measure(msg []byte, p *Parameters) (time.Duration, error) {
	start, err := e.clock.Now()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", stretch.ErrClockUnavailable, err)
	}
	if _, err := e.Transform(msg, p); err != nil {
		return 0, err
	}
	end, err := e.clock.Now()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", stretch.ErrClockUnavailable, err)
	}
	return end - start, nil
}
