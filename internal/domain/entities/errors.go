package entities

import "errors"

var (
	// ErrInvalidVersionFormat is returned when a version component is not a non-negative integer.
	ErrInvalidVersionFormat = errors.New("invalid version format")

	// ErrVersionComponentOutOfRange is returned when a component exceeds its configured cap.
	ErrVersionComponentOutOfRange = errors.New("version component out of range")

	// ErrUnexpectedVersionParity is returned when the development branch carries an even build code.
	ErrUnexpectedVersionParity = errors.New("unexpected version parity")

	// ErrNoVersionMarkerFound is returned when history holds no version bump commit.
	ErrNoVersionMarkerFound = errors.New("no version marker found")

	// ErrVCSOperation wraps every failure reported by the version-control backend.
	ErrVCSOperation = errors.New("vcs operation failed")
)
