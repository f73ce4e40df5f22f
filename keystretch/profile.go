package keystretch

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TheusHen/keystretch/keystretch/blockcipher"
	"github.com/TheusHen/keystretch/keystretch/kdf"
	"github.com/TheusHen/keystretch/keystretch/stretch"
)

var (
	ErrInvalidProfile = errors.New("keystretch: invalid profile")
)

// ProfileFileMode is the permission used by SaveProfile.
const ProfileFileMode = 0o600

// HexBytes is a byte slice that is hex encoded in YAML.
type HexBytes []byte

func (h HexBytes) MarshalYAML() (interface{}, error) {
	return hex.EncodeToString(h), nil
}

func (h *HexBytes) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("keystretch: bad hex: %w", err)
	}
	*h = b
	return nil
}

// Profile records everything needed to reproduce a stretched key.
type Profile struct {
	Cipher       string        `yaml:"cipher"`
	Seed         HexBytes      `yaml:"seed"`
	Rounds       uint64        `yaml:"rounds"`
	Budget       time.Duration `yaml:"budget,omitempty"`
	CalibratedAt time.Time     `yaml:"calibrated_at,omitempty"`
}

// NewProfile generates a random seed and calibrates the round count for
// budget. Options select the cipher and clock exactly as for stretch.New.
func NewProfile(budget time.Duration, opts ...stretch.Option) (*Profile, error) {
	s := stretch.New(opts...)

	seed := make([]byte, stretch.SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("keystretch: failed to generate seed: %w", err)
	}

	scratch := make([]byte, stretch.BufferSize)
	rounds, err := s.Calibrate(scratch, seed, budget)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Cipher:       s.Cipher().Name(),
		Seed:         seed,
		Rounds:       rounds,
		Budget:       budget,
		CalibratedAt: time.Now().UTC(),
	}, nil
}

// Validate checks that the profile names a known cipher and has a 32-byte seed.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil", ErrInvalidProfile)
	}
	if _, err := blockcipher.ByName(p.Cipher); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if len(p.Seed) != stretch.SeedSize {
		return fmt.Errorf("%w: seed is %d bytes, want %d", ErrInvalidProfile, len(p.Seed), stretch.SeedSize)
	}
	return nil
}

func (p *Profile) stretcher() (*stretch.Stretcher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, _ := blockcipher.ByName(p.Cipher)
	return stretch.New(stretch.WithCipher(c)), nil
}

// Derive stretches a copy of key with the profile's cipher, seed and rounds.
func (p *Profile) Derive(key []byte) ([]byte, error) {
	return p.DeriveContext(context.Background(), key)
}

// DeriveContext is Derive with cancellation.
func (p *Profile) DeriveContext(ctx context.Context, key []byte) ([]byte, error) {
	s, err := p.stretcher()
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), key...)
	if err := s.TransformContext(ctx, out, p.Seed, p.Rounds); err != nil {
		return nil, err
	}
	return out, nil
}

// Parameters converts an AES-256 profile to an AES-KDF parameter dictionary.
func (p *Profile) Parameters() (*kdf.Parameters, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if c, _ := blockcipher.ByName(p.Cipher); c.Name() != blockcipher.AES256().Name() {
		return nil, fmt.Errorf("%w: AES-KDF requires aes-256, profile uses %s", ErrInvalidProfile, p.Cipher)
	}
	params := kdf.NewAESEngine().DefaultParameters()
	params.SetUInt64(kdf.AESRounds, p.Rounds)
	params.SetBytes(kdf.AESSeed, p.Seed)
	return params, nil
}

// SaveProfile writes p as YAML.
func SaveProfile(path string, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("keystretch: failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, ProfileFileMode); err != nil {
		return fmt.Errorf("keystretch: failed to write profile: %w", err)
	}
	return nil
}

// LoadProfile reads and validates a YAML profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keystretch: failed to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
