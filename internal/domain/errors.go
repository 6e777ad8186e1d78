package domain

import "errors"

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = errors.New("invalid radius")
	ErrStoreUnavailable  = errors.New("zone store unavailable")
	ErrZoneNotFound      = errors.New("zone not found")
	ErrAlreadyInstalled  = errors.New("plugin already installed")
)
