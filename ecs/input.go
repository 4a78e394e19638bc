package ecs

import "strings"

// Key is a frontend-independent key code. Frontends translate their native
// key events into KeyPressed and KeyReleased signals.
type Key int

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyEscape
	KeyR
	KeyA
	KeyD
	KeyW
)

var keyNames = map[Key]string{
	KeyUnknown: "Unknown",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeySpace:   "Space",
	KeyEnter:   "Enter",
	KeyEscape:  "Escape",
	KeyR:       "R",
	KeyA:       "A",
	KeyD:       "D",
	KeyW:       "W",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKey returns the key with the given name, as produced by Key.String.
// Matching ignores case.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if k != KeyUnknown && strings.EqualFold(n, name) {
			return k, true
		}
	}
	return KeyUnknown, false
}

// MarshalText encodes the key by name, so keys read naturally in config files.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key name.
func (k *Key) UnmarshalText(text []byte) error {
	key, ok := ParseKey(string(text))
	if !ok {
		return &UnknownKeyError{Name: string(text)}
	}
	*k = key
	return nil
}

// UnknownKeyError reports a key name that ParseKey does not recognise.
type UnknownKeyError struct {
	Name string
}

func (e *UnknownKeyError) Error() string {
	return "unknown key " + `"` + e.Name + `"`
}

// KeyPressed is signalled when a key goes down.
type KeyPressed struct {
	Key Key
}

// KeyReleased is signalled when a key goes up.
type KeyReleased struct {
	Key Key
}

// SceneStarted is signalled once the scene has been populated.
type SceneStarted struct{}
