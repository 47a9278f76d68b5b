package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a virtual key code. Values match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key uint32

const (
	KeyUnknown   Key = 0
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyQ         Key = 81  // Q key (ASCII)
	KeyR         Key = 82  // R key (ASCII)
	KeyEsc       Key = 256 // Escape key (GLFW)
	KeyEnter     Key = 257 // Enter key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyF11       Key = 300 // F11 key (GLFW)
)

// String returns a short human readable name for well known keys.
func (k Key) String() string {
	switch k {
	case KeySpace:
		return "Space"
	case KeyQ:
		return "Q"
	case KeyR:
		return "R"
	case KeyEsc:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyF11:
		return "F11"
	case KeyUnknown:
		return "Unknown"
	}
	if k >= 33 && k <= 126 {
		return string(rune(k))
	}
	return "Key(" + strconv.FormatUint(uint64(k), 10) + ")"
}

var namedKeys = []Key{KeySpace, KeyEsc, KeyEnter, KeyBackspace, KeyF11}

// ParseKey maps a key name as printed by Key.String back onto its code. Matching ignores case,
// and any single printable character selects its GLFW code (letters use the upper-case ASCII value).
//
// Parameters:
//   - name: the key name, e.g. "Escape", "q" or "F11"
//
// Returns:
//   - Key: the parsed key
//   - error: error if the name matches no key
func ParseKey(name string) (Key, error) {
	trimmed := strings.TrimSpace(name)
	for _, k := range namedKeys {
		if strings.EqualFold(trimmed, k.String()) {
			return k, nil
		}
	}
	if len(trimmed) == 1 {
		c := strings.ToUpper(trimmed)[0]
		if c >= 33 && c <= 126 {
			return Key(c), nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", name)
}
