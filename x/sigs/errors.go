package sigs

import (
	"github.com/iov-one/swapd/errors"
)

// x/sigs reserves 20 ~ 29.
var (
	// ErrInvalidSequence is returned when a signature carries a sequence
	// other than the next one expected for its signer.
	ErrInvalidSequence = errors.Register(20, "invalid sequence number")
)
