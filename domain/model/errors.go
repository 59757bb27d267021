package model

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrClusterNotFound   = errors.New("cluster not found")
	ErrS3StorageNotFound = errors.New("s3 storage not found")
	ErrPlatformNotFound  = errors.New("platform not found")
	ErrStateNotFound     = errors.New("platform state not found")
	ErrActionNotFound    = errors.New("action not found")

	// ErrActionUnavailable is returned when an action exists but its
	// availability predicate returned false for the current platform state.
	ErrActionUnavailable = errors.New("action not available")
)

// ValidationError reports a field-scoped rule violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError constructs a field-scoped validation error.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a unique or foreign-key constraint violation
// translated from the storage engine.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conflict: %s: %v", e.Message, e.Err)
	}
	return "conflict: " + e.Message
}

func (e *ConflictError) Unwrap() error { return e.Err }

// ClusterConfigError reports a cluster type/credential mismatch.
// Operations must not retry; the record itself needs fixing.
type ClusterConfigError struct {
	Message string
}

func (e *ClusterConfigError) Error() string { return "cluster config: " + e.Message }

// ClusterTransientError wraps network timeouts and 5xx responses from the
// API server. Callers may retry; Apply and Decommission are idempotent.
type ClusterTransientError struct {
	Err error
}

func (e *ClusterTransientError) Error() string { return "cluster transient: " + e.Err.Error() }
func (e *ClusterTransientError) Unwrap() error { return e.Err }

// ClusterFatalError wraps authorization failures and malformed manifests.
// Operator intervention is needed.
type ClusterFatalError struct {
	Err error
}

func (e *ClusterFatalError) Error() string { return "cluster fatal: " + e.Err.Error() }
func (e *ClusterFatalError) Unwrap() error { return e.Err }

// EncryptionError reports a missing key, wrong key, or corrupted ciphertext.
// A record must never be persisted half encrypted.
type EncryptionError struct {
	Op  string
	Err error
}

func (e *EncryptionError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *EncryptionError) Unwrap() error { return e.Err }
