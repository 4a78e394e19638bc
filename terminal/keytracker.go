package terminal

import (
	"time"

	"github.com/plus3/gallery/ecs"
)

const (
	// DefaultInitialHold covers the terminal's delay before auto-repeat starts.
	DefaultInitialHold = 550 * time.Millisecond
	// DefaultRepeatHold covers the gap between auto-repeated key events.
	DefaultRepeatHold = 120 * time.Millisecond
	// DefaultTapGap is the shortest interval between two reported presses
	// of a tap key. Auto-repeat arrives faster than this.
	DefaultTapGap = 100 * time.Millisecond
)

type heldKey struct {
	lastSeen    time.Time
	lastPressed time.Time
	repeating   bool
}

// KeyTracker synthesises key releases for terminals, which only report
// presses (and auto-repeats of them). A key counts as held until no event
// for it has arrived within the hold window; repeats do not produce extra
// presses. Tap keys are the exception: a further event at least the tap
// gap after the last reported press is reported as a new press, so quick
// taps of the fire key are not lost.
type KeyTracker struct {
	initialHold time.Duration
	repeatHold  time.Duration
	held        map[ecs.Key]*heldKey
	taps        map[ecs.Key]time.Duration
}

func NewKeyTracker(initialHold, repeatHold time.Duration) *KeyTracker {
	return &KeyTracker{
		initialHold: initialHold,
		repeatHold:  repeatHold,
		held:        make(map[ecs.Key]*heldKey),
		taps:        make(map[ecs.Key]time.Duration),
	}
}

// SetTapKey marks key as a tap key with the given minimum gap between presses.
func (t *KeyTracker) SetTapKey(key ecs.Key, gap time.Duration) {
	t.taps[key] = gap
}

// Press records a key event at now. It returns a KeyPressed event the first
// time the key is seen, and nil for repeats.
func (t *KeyTracker) Press(key ecs.Key, now time.Time) any {
	h, ok := t.held[key]
	if !ok {
		t.held[key] = &heldKey{lastSeen: now, lastPressed: now}
		return ecs.KeyPressed{Key: key}
	}

	h.lastSeen = now
	if gap, tap := t.taps[key]; tap && now.Sub(h.lastPressed) >= gap {
		h.lastPressed = now
		return ecs.KeyPressed{Key: key}
	}
	h.repeating = true
	return nil
}

// Expire returns a KeyReleased event for every key whose hold window has
// passed at now.
func (t *KeyTracker) Expire(now time.Time) []any {
	var released []any
	for key, h := range t.held {
		hold := t.initialHold
		if h.repeating {
			hold = t.repeatHold
		}
		if now.Sub(h.lastSeen) > hold {
			delete(t.held, key)
			released = append(released, ecs.KeyReleased{Key: key})
		}
	}
	return released
}

// ReleaseAll releases every held key.
func (t *KeyTracker) ReleaseAll() []any {
	var released []any
	for key := range t.held {
		released = append(released, ecs.KeyReleased{Key: key})
	}
	clear(t.held)
	return released
}

// Held reports whether key is currently considered down.
func (t *KeyTracker) Held(key ecs.Key) bool {
	_, ok := t.held[key]
	return ok
}
