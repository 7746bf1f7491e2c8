// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between failure scenarios
// without inspecting SQL driver errors directly.
package repository

import "errors"

// ErrReservationNotFound is returned by lookup methods when no
// reservation matches the given email. The reservation write path
// treats this as the green light to insert.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrPostNotFound is returned when no blog post matches the requested
// slug or when no published post exists at all. Handlers translate
// this into an HTTP 404 response.
var ErrPostNotFound = errors.New("post not found")
