package core

import "errors"

var (
	// ErrButtonInstalled is returned when bootstrap tries to hand over a
	// second button. Re-installation is a bootstrap bug; the first handle
	// stays in place.
	ErrButtonInstalled = errors.New("button already installed")

	// ErrNilButton is returned when InstallButton is given no handle.
	ErrNilButton = errors.New("nil button handle")

	// ErrInvalidMode is returned for values outside the SystemMode enumeration.
	ErrInvalidMode = errors.New("invalid system mode")
)
