package wallet

import "errors"

// Service errors
var (
	ErrMirrorFailed = errors.New("failed to mirror wallet onto profile")
)
