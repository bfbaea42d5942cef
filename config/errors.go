package config

import "errors"

var (
	// ErrInvalidSettings is returned when a setting has an invalid value
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrEnvFileNotFound is returned when an explicitly named .env file is missing
	ErrEnvFileNotFound = errors.New(".env file not found")
)
