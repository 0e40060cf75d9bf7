package errors

import (
	"errors"
)

var (
	// General Errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnsupportedFile = errors.New("unsupported file format")

	// Journey Errors
	ErrInvalidJourney      = errors.New("journey document is not a well-formed sequence of checkpoints and steps")
	ErrInvalidEnvironments = errors.New("environments document is malformed")
	ErrInvalidAttributes   = errors.New("data attribute document is malformed")

	// File & Directory Errors
	ErrFileNotFound   = errors.New("file not found")
	ErrFileReadError  = errors.New("error reading file")
	ErrFileWriteError = errors.New("error writing to file")
	ErrDirNotFound    = errors.New("directory not found")

	// Report Errors
	ErrReportWriteFailed = errors.New("failed to write conversion report")

	// Configuration Errors
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrConfigParseError = errors.New("error parsing configuration")
	ErrNotInitialized   = errors.New("component not initialized")
)
