package repository

import "errors"

// errRolledBack aborts a write without persisting; it never leaves this package.
var errRolledBack = errors.New("batch rolled back")
