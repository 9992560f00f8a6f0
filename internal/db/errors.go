package db

import "errors"

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrUnknownDriver     = errors.New("unknown database driver")
)
