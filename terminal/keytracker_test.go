package terminal

import (
	"testing"
	"time"

	"github.com/plus3/gallery/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyTrackerPressOnce(t *testing.T) {
	tracker := NewKeyTracker(500*time.Millisecond, 100*time.Millisecond)
	start := time.Unix(0, 0)

	assert.Equal(t, ecs.KeyPressed{Key: ecs.KeyLeft}, tracker.Press(ecs.KeyLeft, start))
	assert.Nil(t, tracker.Press(ecs.KeyLeft, start.Add(50*time.Millisecond)), "repeats are swallowed")
	assert.True(t, tracker.Held(ecs.KeyLeft))
}

func TestKeyTrackerExpire(t *testing.T) {
	tracker := NewKeyTracker(500*time.Millisecond, 100*time.Millisecond)
	start := time.Unix(0, 0)

	tracker.Press(ecs.KeyLeft, start)
	assert.Empty(t, tracker.Expire(start.Add(400*time.Millisecond)), "still inside the initial hold")

	released := tracker.Expire(start.Add(600 * time.Millisecond))
	require.Len(t, released, 1)
	assert.Equal(t, ecs.KeyReleased{Key: ecs.KeyLeft}, released[0])
	assert.False(t, tracker.Held(ecs.KeyLeft))

	assert.Empty(t, tracker.Expire(start.Add(time.Second)), "a key is released once")
}

func TestKeyTrackerRepeatShortensHold(t *testing.T) {
	tracker := NewKeyTracker(500*time.Millisecond, 100*time.Millisecond)
	start := time.Unix(0, 0)

	tracker.Press(ecs.KeyRight, start)
	tracker.Press(ecs.KeyRight, start.Add(450*time.Millisecond))
	tracker.Press(ecs.KeyRight, start.Add(480*time.Millisecond))

	assert.Empty(t, tracker.Expire(start.Add(560*time.Millisecond)))
	assert.Len(t, tracker.Expire(start.Add(600*time.Millisecond)), 1)

	assert.Equal(t, ecs.KeyPressed{Key: ecs.KeyRight}, tracker.Press(ecs.KeyRight, start.Add(700*time.Millisecond)),
		"a new press after release is reported again")
}

func TestKeyTrackerReleaseAll(t *testing.T) {
	tracker := NewKeyTracker(DefaultInitialHold, DefaultRepeatHold)
	now := time.Now()

	tracker.Press(ecs.KeyLeft, now)
	tracker.Press(ecs.KeySpace, now)

	released := tracker.ReleaseAll()
	assert.ElementsMatch(t, []any{
		ecs.KeyReleased{Key: ecs.KeyLeft},
		ecs.KeyReleased{Key: ecs.KeySpace},
	}, released)
	assert.False(t, tracker.Held(ecs.KeyLeft))
	assert.Empty(t, tracker.ReleaseAll())
}

func TestKeyTrackerTapKey(t *testing.T) {
	tracker := NewKeyTracker(500*time.Millisecond, 100*time.Millisecond)
	tracker.SetTapKey(ecs.KeySpace, 100*time.Millisecond)
	start := time.Unix(0, 0)

	assert.Equal(t, ecs.KeyPressed{Key: ecs.KeySpace}, tracker.Press(ecs.KeySpace, start))
	assert.Nil(t, tracker.Press(ecs.KeySpace, start.Add(30*time.Millisecond)), "auto-repeat inside the gap")
	assert.Equal(t, ecs.KeyPressed{Key: ecs.KeySpace}, tracker.Press(ecs.KeySpace, start.Add(200*time.Millisecond)),
		"a second tap inside the initial hold still fires")

	tracker.Press(ecs.KeyLeft, start)
	assert.Nil(t, tracker.Press(ecs.KeyLeft, start.Add(200*time.Millisecond)), "movement keys are not tap keys")
}
