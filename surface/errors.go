// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match them with errors.Is.
var (
	// ErrSurfaceClosed is returned for any operation on a destroyed manager
	// or target.
	ErrSurfaceClosed = errors.New("surface: closed")

	// ErrInvalidDimensions is returned for non-positive surface sizes.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrSurfaceCreate is returned when a backend cannot allocate a target.
	// It is fatal: the manager has no fallback.
	ErrSurfaceCreate = errors.New("surface: create failed")

	// ErrAlreadyConnected is returned by a second OnConnect.
	ErrAlreadyConnected = errors.New("surface: already connected")

	// ErrNoDevice is returned by DeviceBackend when the host did not supply
	// a GPU device.
	ErrNoDevice = errors.New("surface: no GPU device")

	// ErrNoBackendAvailable is returned when no registered backend is
	// available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// SurfaceClosedError reports an operation attempted after OnDestroy.
type SurfaceClosedError struct {
	Op string
}

func (e *SurfaceClosedError) Error() string {
	return "surface: " + e.Op + " on destroyed surface"
}

// Is reports whether target is ErrSurfaceClosed.
func (e *SurfaceClosedError) Is(target error) bool {
	return target == ErrSurfaceClosed
}

// InvalidDimensionsError reports a non-positive width or height. It is
// returned before any backend allocation is attempted.
type InvalidDimensionsError struct {
	Width, Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("surface: invalid dimensions %dx%d", e.Width, e.Height)
}

// Is reports whether target is ErrInvalidDimensions.
func (e *InvalidDimensionsError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// CreateError reports a backend failure to allocate a target.
type CreateError struct {
	Backend       string
	Width, Height int
	Err           error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("surface: create %dx%d on %s: %v", e.Width, e.Height, e.Backend, e.Err)
}

// Unwrap returns the backend error.
func (e *CreateError) Unwrap() error { return e.Err }

// Is reports whether target is ErrSurfaceCreate.
func (e *CreateError) Is(target error) bool {
	return target == ErrSurfaceCreate
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}
