// Package keystretch hardens 256-bit master keys against brute force by
// iterated block-cipher encryption.
//
// The building blocks live in sub-packages:
//   - blockcipher: the cipher capability (AES-256, Twofish-256)
//   - stretch: the key transformation and its self-calibrating variant
//   - kdf: self-describing KDF engines and their parameter dictionaries
//
// This package ties them together with Profile, the persisted result of a
// calibration run: cipher, seed and round count. Loading a profile and
// calling Derive reproduces the same stretched key on any machine.
package keystretch
