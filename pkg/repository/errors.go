package repository

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a requested record does not exist. Both
// backends wrap this sentinel so callers can check it backend-agnostically.
var ErrNotFound = goerr.New("record not found")
