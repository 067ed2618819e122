package sync

import "errors"

var (
	// ErrNotConnected means the user has no active integration record for
	// the provider.
	ErrNotConnected = errors.New("calendar integration not connected")
	// ErrInvalidState rejects an OAuth callback whose state nonce is unknown
	// or expired.
	ErrInvalidState = errors.New("invalid or expired oauth state")
)
