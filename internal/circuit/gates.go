package circuit

// Gate classification tables. Names follow the lowercase vocabulary emitted
// by common transpilers (qiskit-style).

// entanglingGates are the two-qubit gates the adjacency policy and the
// labeling rules treat as entangling.
var entanglingGates = map[string]struct{}{
	"cx":   {},
	"cy":   {},
	"cz":   {},
	"ch":   {},
	"cp":   {},
	"crx":  {},
	"cry":  {},
	"crz":  {},
	"cu1":  {},
	"swap": {},
	"rxx":  {},
	"ryy":  {},
	"rzz":  {},
}

// rotationGates maps single-qubit rotation gates to their family name.
var rotationGates = map[string]string{
	"rx": "RX",
	"ry": "RY",
	"rz": "RZ",
	"p":  "P",
	"u1": "U1",
}

// phaseGates are controlled-phase style gates used by the phase-ladder rule.
var phaseGates = map[string]struct{}{
	"cp":  {},
	"crz": {},
	"cu1": {},
	"cz":  {},
}

// IsEntangling reports whether gate names a two-qubit entangling gate.
func IsEntangling(gate string) bool {
	_, ok := entanglingGates[gate]
	return ok
}

// RotationFamily returns the rotation family ("RX", "RY", ...) for
// single-qubit rotation gates, or "" for anything else.
func RotationFamily(gate string) string {
	return rotationGates[gate]
}

// IsPhase reports whether gate names a controlled-phase style gate.
func IsPhase(gate string) bool {
	_, ok := phaseGates[gate]
	return ok
}

// EntanglingPair returns the unordered qubit pair of a two-qubit entangling
// operation, low id first. ok is false for anything else.
func EntanglingPair(op Operation) (lo, hi int, ok bool) {
	if !IsEntangling(op.Gate) || len(op.Qubits) != 2 {
		return 0, 0, false
	}
	lo, hi = op.Qubits[0], op.Qubits[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}
