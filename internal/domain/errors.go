package domain

import "errors"

// Transfer errors
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("path not found")

	// ErrNotDirectory indicates the paste destination is not a directory
	ErrNotDirectory = errors.New("not a directory")

	// ErrPermissionDenied indicates insufficient filesystem permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrChecksumMismatch indicates post-copy verification failed
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Clipboard errors
var (
	// ErrNoClipboard indicates a paste was requested with an empty clipboard
	ErrNoClipboard = errors.New("clipboard is empty")

	// ErrPasteInProgress indicates another paste is already running
	ErrPasteInProgress = errors.New("paste already in progress")
)

// Config errors
var (
	// ErrConfigNotFound indicates no config file could be located
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates the config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)
