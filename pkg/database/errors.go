package database

import "errors"

// ErrNotReady is returned when the database is used before Start succeeds.
var ErrNotReady = errors.New("database not ready")
