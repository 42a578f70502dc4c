package domain

import "errors"

var (
	// ErrValidation marks user input that fails required-field or range checks.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an update targeting an entity id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrImport marks a structurally unreadable import payload.
	ErrImport = errors.New("import failed")
	// ErrSyncWrite marks a failed auto-sync write. Never fatal.
	ErrSyncWrite = errors.New("sync write failed")
)
