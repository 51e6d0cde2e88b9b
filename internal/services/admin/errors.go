package admin

import "errors"

// ErrAccessDenied is returned when an identity without the admin flag calls
// an operation that yields something other than a collection. Collection
// operations return empty results instead, so nothing partial leaks.
var ErrAccessDenied = errors.New("admin access denied")
