package entity

import "errors"

// Settlement errors. Every validation failure aborts the whole operation
// before any write; callers can rely on errors.Is against these sentinels.
var (
	ErrItemNotAvailable    = errors.New("item is not available")
	ErrInsufficientBalance = errors.New("insufficient points balance")
	ErrInvalidAmount       = errors.New("invalid point amount")
	ErrSelfSwap            = errors.New("cannot request a swap for your own item")
	ErrDuplicatePending    = errors.New("pending swap request already exists for this item")
	ErrNotAuthorized       = errors.New("not authorized")
	ErrAlreadyResolved     = errors.New("swap request has already been resolved")
	ErrNotFound            = errors.New("record not found")

	// ErrStorageUnavailable wraps infrastructure failures (connectivity,
	// timeouts). Safe to retry from a clean read.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
