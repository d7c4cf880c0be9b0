package circuit

import "errors"

// Sequence validation errors.
var (
	ErrPositionMismatch = errors.New("operation position does not match sequence index")
	ErrNoQubits         = errors.New("operation has no qubits")
	ErrNegativeQubit    = errors.New("qubit id is negative")
	ErrDuplicateQubit   = errors.New("operation lists the same qubit twice")
	ErrEmptyGate        = errors.New("operation has an empty gate type")
)
