// Package blockcipher provides the block cipher capability consumed by the
// key stretching core.
//
// The core needs exactly two operations from a cipher:
//   - a one-time key schedule derived from a 256-bit key
//   - single-block forward encryption of a 128-bit block (no chaining, no IV)
//
// Any 128-bit-block, 256-bit-key cipher can back the capability. AES-256 is
// the default; Twofish-256 is offered as an alternative.
package blockcipher
