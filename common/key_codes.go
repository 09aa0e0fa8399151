package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
	KeyHome  = 268 // Home key (GLFW)
)

// ModifierKey is a bit set of held modifier keys.
// Bit values match GLFW's ModifierKey so platform flags can be converted with a plain cast.
type ModifierKey int

const (
	ModShift   ModifierKey = 0x0001
	ModControl ModifierKey = 0x0002
	ModAlt     ModifierKey = 0x0004
	ModSuper   ModifierKey = 0x0008
)

// Has reports whether every bit in m is set.
func (k ModifierKey) Has(m ModifierKey) bool {
	return k&m == m
}

// Pointer button indices in DOM order (0 = left, 1 = middle, 2 = right).
// GLFW numbers the middle and right buttons the other way round; windows translate before dispatch.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)
