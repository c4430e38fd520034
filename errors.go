package papercut

import "errors"

var (
	// ErrInvalidSize is returned by Initialize for non-positive dimensions.
	ErrInvalidSize = errors.New("papercut: invalid canvas size")

	// ErrInvalidRecord is returned by SetCommands for a record with an
	// unknown kind or tool.
	ErrInvalidRecord = errors.New("papercut: invalid command record")
)
