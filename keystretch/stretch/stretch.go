package stretch

import (
	"context"
	"crypto/cipher"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/TheusHen/keystretch/keystretch/blockcipher"
)

const (
	// BufferSize is the size of the buffer being stretched (256 bits).
	BufferSize = 32
	// SeedSize is the size of the seed the schedule is derived from (256 bits).
	SeedSize = 32
	// BlockSize is the size of each independently encrypted half.
	BlockSize = blockcipher.BlockSize
	// BatchRounds is the number of rounds Calibrate runs between clock reads.
	BatchRounds = 128

	// pollRounds is how often TransformContext checks for cancellation.
	pollRounds = 1 << 14
)

var (
	ErrInvalidArgument  = errors.New("stretch: invalid argument")
	ErrClockUnavailable = errors.New("stretch: monotonic clock unavailable")
)

// Option configures a Stretcher.
type Option func(*Stretcher)

// WithCipher selects the block cipher. The default is AES-256.
func WithCipher(c blockcipher.Cipher) Option {
	return func(s *Stretcher) {
		if c != nil {
			s.cipher = c
		}
	}
}

// WithClock selects the clock used by Calibrate. The default is SystemClock.
func WithClock(c Clock) Option {
	return func(s *Stretcher) {
		if c != nil {
			s.clock = c
		}
	}
}

// Stretcher runs key transformations with a fixed cipher and clock.
// It holds no mutable state and is safe for concurrent use.
type Stretcher struct {
	cipher blockcipher.Cipher
	clock  Clock
}

// New creates a Stretcher.
func New(opts ...Option) *Stretcher {
	s := &Stretcher{
		cipher: blockcipher.AES256(),
		clock:  SystemClock(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Cipher returns the configured block cipher.
func (s *Stretcher) Cipher() blockcipher.Cipher { return s.cipher }

var defaultStretcher = New()

// Transform stretches buf in place with AES-256. See (*Stretcher).Transform.
func Transform(buf, seed []byte, rounds uint64) error {
	return defaultStretcher.Transform(buf, seed, rounds)
}

// Calibrate measures AES-256 rounds for budget. See (*Stretcher).Calibrate.
func Calibrate(buf, seed []byte, budget time.Duration) (uint64, error) {
	return defaultStretcher.Calibrate(buf, seed, budget)
}

// Transform encrypts both 16-byte halves of buf in place, rounds times, under
// a schedule derived from seed. Zero rounds leaves buf unchanged.
// buf and seed must both be exactly 32 bytes; otherwise ErrInvalidArgument is
// returned and buf is not touched.
func (s *Stretcher) Transform(buf, seed []byte, rounds uint64) error {
	sched, err := s.prepare(buf, seed)
	if err != nil {
		return err
	}
	encryptRounds(sched, buf, rounds)
	return nil
}

// TransformContext is Transform with cancellation. The rounds are applied to a
// private copy that is written back to buf only after the last round, so a
// cancelled call returns ctx.Err() and leaves buf as it was.
func (s *Stretcher) TransformContext(ctx context.Context, buf, seed []byte, rounds uint64) error {
	sched, err := s.prepare(buf, seed)
	if err != nil {
		return err
	}

	var work [BufferSize]byte
	defer clear(work[:])
	copy(work[:], buf)

	for remaining := rounds; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(remaining, pollRounds)
		encryptRounds(sched, work[:], n)
		remaining -= n
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	copy(buf, work[:])
	return nil
}

// Calibrate runs batches of BatchRounds rounds on buf until at least budget
// has elapsed on the clock, and returns the number of rounds executed. The
// result is always a multiple of BatchRounds. A zero or negative budget runs a
// single batch.
//
// buf is mutated: on return it holds Transform(original, seed, result). Callers
// wanting the stretched key must run Transform on a fresh copy of the original
// buffer with the returned count.
func (s *Stretcher) Calibrate(buf, seed []byte, budget time.Duration) (uint64, error) {
	sched, err := s.prepare(buf, seed)
	if err != nil {
		return 0, err
	}

	start, err := s.clock.Now()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClockUnavailable, err)
	}

	var total uint64
	for {
		encryptRounds(sched, buf, BatchRounds)
		if total > math.MaxUint64-BatchRounds {
			return math.MaxUint64, nil
		}
		total += BatchRounds

		now, err := s.clock.Now()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrClockUnavailable, err)
		}
		if now < start {
			return 0, fmt.Errorf("%w: clock went backwards", ErrClockUnavailable)
		}
		if now-start >= budget {
			return total, nil
		}
	}
}

func (s *Stretcher) prepare(buf, seed []byte) (cipher.Block, error) {
	if err := checkArgs(buf, seed); err != nil {
		return nil, err
	}
	sched, err := s.cipher.NewSchedule(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return sched, nil
}

func checkArgs(buf, seed []byte) error {
	switch {
	case buf == nil:
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	case len(buf) != BufferSize:
		return fmt.Errorf("%w: buffer is %d bytes, want %d", ErrInvalidArgument, len(buf), BufferSize)
	case seed == nil:
		return fmt.Errorf("%w: nil seed", ErrInvalidArgument)
	case len(seed) != SeedSize:
		return fmt.Errorf("%w: seed is %d bytes, want %d", ErrInvalidArgument, len(seed), SeedSize)
	}
	return nil
}

// encryptRounds self-encrypts the first and second half of buf n times each.
func encryptRounds(b cipher.Block, buf []byte, n uint64) {
	first := buf[:BlockSize]
	second := buf[BlockSize:BufferSize]
	for i := uint64(0); i < n; i++ {
		b.Encrypt(first, first)
		b.Encrypt(second, second)
	}
}
