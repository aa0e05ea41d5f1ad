package font

import "fmt"

// Handle is an opaque, cheaply copyable token referring to a font entry in
// a Registry. The zero value means "no font loaded"; it is the default for
// text styles and compares equal to every other zero handle. A Handle never
// owns the font data — dropping it has no effect on the registry.
type Handle struct {
	id uint32
}

// IsZero reports whether h is the "no font loaded" sentinel.
func (h Handle) IsZero() bool { return h.id == 0 }

// String returns a short debug form; handles are otherwise opaque.
func (h Handle) String() string {
	if h.IsZero() {
		return "font(none)"
	}
	return fmt.Sprintf("font#%d", h.id)
}
