package domain

import "errors"

// ErrInvalidInput is returned when the source design tree is malformed or structurally impossible.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownNode is returned when an operation references an id absent from the index.
var ErrUnknownNode = errors.New("unknown node id")

// ErrUnsupportedVersion is returned when a persisted document carries a different version.
var ErrUnsupportedVersion = errors.New("unsupported state version")

// ErrMalformedPatch is returned when a patch payload matches none of the accepted shapes.
var ErrMalformedPatch = errors.New("unsupported patch shape")

// ErrStateNotFound is returned when no state document exists for a key.
var ErrStateNotFound = errors.New("state not found")

// ErrInvalidState is returned when a persisted document exists but fails structural checks.
var ErrInvalidState = errors.New("invalid state document")
