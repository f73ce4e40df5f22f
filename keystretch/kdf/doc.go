// Package kdf wraps key stretching primitives as self-describing key
// derivation engines.
//
// Each Engine is identified by a UUID and configured by a Parameters
// dictionary. The dictionary has a compact binary encoding (the KDBX
// "variant dictionary" layout), so it can be stored in a file header next
// to whatever the derived key protects and read back to reproduce the key.
//
// Built-in engines:
//   - AES-KDF: iterated AES-256 self-encryption of both buffer halves,
//     finished with SHA-256
//   - Argon2id: memory-hard derivation from golang.org/x/crypto/argon2
package kdf
