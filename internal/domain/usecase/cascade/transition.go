package cascade

// Edge is the direction of a lock transition
type Edge int

const (
	// EdgeNone means the lock state did not change
	EdgeNone Edge = iota
	// EdgeRising means the lock just engaged
	EdgeRising
	// EdgeFalling means the lock just released
	EdgeFalling
)

// String returns a readable edge name for logs
func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	default:
		return "none"
	}
}

// Detect computes the edge between two lock states.
// The inputs are domain-agnostic booleans; each caller OR-composes its own
// lock sources before calling.
func Detect(prevLocked, nextLocked bool) Edge {
	switch {
	case !prevLocked && nextLocked:
		return EdgeRising
	case prevLocked && !nextLocked:
		return EdgeFalling
	default:
		return EdgeNone
	}
}
