package kdf

import "errors"

var (
	ErrNilInput            = errors.New("kdf: nil message or parameters")
	ErrMalformedParameters = errors.New("kdf: malformed parameter dictionary")
	ErrUnsupportedVersion  = errors.New("kdf: unsupported parameter dictionary version")
	ErrMissingUUID         = errors.New("kdf: parameter dictionary has no engine UUID")
	ErrUnknownEngine       = errors.New("kdf: unknown engine")
	ErrEngineMismatch      = errors.New("kdf: parameters belong to a different engine")
	ErrMissingParameter    = errors.New("kdf: missing parameter")
	ErrParameterType       = errors.New("kdf: parameter has wrong type")
	ErrParameterRange      = errors.New("kdf: parameter out of range")
	ErrUnsupported         = errors.New("kdf: unsupported parameter")
)
