package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Callers match on
// them with errors.Is; implementations wrap them with entity context.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrInsufficientStock = errors.New("insufficient stock")
)
