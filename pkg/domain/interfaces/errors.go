package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every repository backend when a record does not
// exist, so callers can branch on it without knowing the backend.
var ErrNotFound = goerr.New("record not found")
