// Package stretch implements iterated block-cipher key stretching.
//
// A 32-byte buffer is split into two 16-byte halves. Each round encrypts both
// halves in place, independently, under a schedule derived once from a 32-byte
// seed. Repeating the round a large number of times makes every guess of the
// original buffer expensive.
//
// Two operations are provided:
//   - Transform applies an exact number of rounds (deterministic, reproducible)
//   - Calibrate measures how many rounds fit in a time budget on this machine
//
// The usual flow is to Calibrate once, persist the returned round count next to
// the seed, and run Transform with that count on every later derivation. The
// buffer left behind by Calibrate is a by-product and must not be used as a key.
//
// Neither operation keeps state between calls; a Stretcher may be shared by any
// number of goroutines as long as each call has its own buffer.
package stretch
