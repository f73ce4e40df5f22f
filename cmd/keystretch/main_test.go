package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheusHen/keystretch/keystretch"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// field returns the value of a "name: value" output line.
func field(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, name+": "); ok {
			return v
		}
	}
	t.Fatalf("no %q line in output:\n%s", name, out)
	return ""
}

var zeroKey = strings.Repeat("00", 32)

func TestTransformConformanceVector(t *testing.T) {
	out, err := run(t, "transform", "--seed", zeroKey, "--rounds", "1", "--key", zeroKey)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("dc95c078a2408989ad48a21492842087", 2)+"\n", out)
}

func TestCalibrateThenTransform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	out, err := run(t, "calibrate", "--duration", "10ms", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rounds: ")

	p, err := keystretch.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "aes-256", p.Cipher)
	assert.NotZero(t, p.Rounds)

	out, err = run(t, "transform", "--profile", path, "--key", zeroKey)
	require.NoError(t, err)

	want, err := p.Derive(make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want)+"\n", out)
}

func TestTransformProfileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	t.Setenv(profileEnv, path)

	_, err := run(t, "calibrate", "--duration", "5ms", "--cipher", "twofish")
	require.NoError(t, err)

	p, err := keystretch.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "twofish-256", p.Cipher)

	out, err := run(t, "transform", "--key", zeroKey)
	require.NoError(t, err)
	want, err := p.Derive(make([]byte, 32))
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want)+"\n", out)
}

func TestCalibrateToStdoutWithParams(t *testing.T) {
	t.Setenv(profileEnv, "")
	out, err := run(t, "calibrate", "--duration", "5ms", "--params")
	require.NoError(t, err)
	assert.Contains(t, out, "cipher: aes-256")
	assert.Contains(t, out, "seed: ")

	params := field(t, out, "params")
	derived, err := run(t, "derive", "--params", params, "--key", zeroKey)
	require.NoError(t, err)
	assert.Equal(t, params, field(t, derived, "params"))
}

func TestTransformErrors(t *testing.T) {
	t.Setenv(profileEnv, "")

	_, err := run(t, "transform", "--seed", zeroKey)
	assert.ErrorContains(t, err, "--key is required")

	_, err = run(t, "transform", "--key", zeroKey)
	assert.ErrorContains(t, err, "either --profile or --seed")

	_, err = run(t, "transform", "--seed", "zz", "--key", zeroKey)
	assert.ErrorContains(t, err, "--seed")

	_, err = run(t, "transform", "--seed", zeroKey, "--key", "00")
	assert.Error(t, err)
}

func TestDeriveRoundTrip(t *testing.T) {
	for _, engine := range []string{"aes-kdf", "argon2id"} {
		t.Run(engine, func(t *testing.T) {
			out, err := run(t, "derive", "--engine", engine, "--password", "hunter2")
			require.NoError(t, err)
			key := field(t, out, "key")
			params := field(t, out, "params")
			assert.Len(t, key, 64)

			again, err := run(t, "derive", "--params", params, "--password", "hunter2")
			require.NoError(t, err)
			assert.Equal(t, key, field(t, again, "key"))

			other, err := run(t, "derive", "--params", params, "--password", "hunter3")
			require.NoError(t, err)
			assert.NotEqual(t, key, field(t, other, "key"))
		})
	}
}

func TestDeriveErrors(t *testing.T) {
	_, err := run(t, "derive", "--engine", "aes-kdf")
	assert.ErrorContains(t, err, "--key or --password")

	_, err = run(t, "derive", "--engine", "scrypt", "--password", "x")
	assert.Error(t, err)

	_, err = run(t, "derive", "--params", "!!!", "--password", "x")
	assert.ErrorContains(t, err, "--params")
}

func TestBench(t *testing.T) {
	out, err := run(t, "bench", "--duration", "5ms", "--workers", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "worker 0: ")
	assert.Contains(t, out, "worker 2: ")
	assert.Contains(t, out, "total: ")
	assert.Contains(t, out, "aes-256")
}
