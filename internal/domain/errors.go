package domain

import "errors"

// Sentinel errors shared across use cases. Handlers map these to
// response codes; everything else surfaces as an opaque server error.
var (
	// ErrNotFound: the referenced work, comment or user does not exist
	// or is soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the caller is not allowed to act on the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrWorkTrashed: the work is in the trash and cannot be edited
	// until restored.
	ErrWorkTrashed = errors.New("work is in the trash")

	// ErrSelfFollow: a user tried to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
