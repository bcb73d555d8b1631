package repos

import "errors"

// ErrInsufficientPoints is returned by charging writes when the user's
// authoritative balance does not cover the cost. The balance row is the
// single source of truth; client-side checks are advisory only.
var ErrInsufficientPoints = errors.New("insufficient points")
