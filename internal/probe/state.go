// Package probe provides an interactive terminal loop that builds a grid from
// a scene and issues queries against it.
package probe

// Mode controls how the cursor moves.
type Mode int

const (
	// ModeWalker moves the cursor only where a footprint fits, like an actor would.
	ModeWalker Mode = iota
	// ModeFree moves the cursor anywhere inside the grid.
	ModeFree
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeWalker:
		return "walker"
	case ModeFree:
		return "free"
	default:
		return "unknown"
	}
}
