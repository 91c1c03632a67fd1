package chain

import "errors"

var (
	// ErrUnknownKind is returned for kind names which are not known.
	ErrUnknownKind = errors.New("unknown call kind")

	// ErrEmptyChain is returned for chain descriptions without a terminal call.
	ErrEmptyChain = errors.New("chain has no terminal call")
)
