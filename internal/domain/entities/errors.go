package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is returned when an application id violates [a-z0-9_.]
	ErrInvalidIdentifier = errors.New("invalid application identifier")

	// ErrMissingRequiredKey is returned when signing requires a key the credentials lack
	ErrMissingRequiredKey = errors.New("missing required key")

	// ErrCredentialsNotFound is returned when signing is required but no credentials file exists
	ErrCredentialsNotFound = errors.New("credentials file not found")

	// ErrStoreFileNotFound is returned when the configured key store does not exist
	ErrStoreFileNotFound = errors.New("key store file not found")

	// ErrSignatureNotFound is returned when an artifact has no detached signature
	ErrSignatureNotFound = errors.New("signature not found")

	// ErrUnknownFlavor is returned for a flavor the project does not define
	ErrUnknownFlavor = errors.New("unknown flavor")

	// ErrUnknownBuildType is returned for a build type other than debug or release
	ErrUnknownBuildType = errors.New("unknown build type")
)

// MissingKeyError names the credentials key that a signing-required build lacks.
// Cause is set when the whole credentials file is absent.
type MissingKeyError struct {
	Key    string
	Source string
	Config string
	Cause  error
}

func (e *MissingKeyError) Error() string {
	msg := fmt.Sprintf("key '%s' is required in %s for signing config '%s'", e.Key, e.Source, e.Config)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrMissingRequiredKey and the cause, if any
func (e *MissingKeyError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMissingRequiredKey}
	}
	return []error{ErrMissingRequiredKey, e.Cause}
}

// UnknownError reports a name that is not part of the project configuration
type UnknownError struct {
	Kind error
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.Name)
}

func (e *UnknownError) Unwrap() error {
	return e.Kind
}
