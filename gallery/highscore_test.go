package gallery_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/plus3/gallery/ecs"
	"github.com/plus3/gallery/gallery"
	"github.com/plus3/gallery/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := gallery.NewMemoryStore(gallery.Scores{Top: 30})

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 30, got.Top)

	require.NoError(t, store.Save(gallery.Scores{Top: 40, Last: 40, Rounds: 1}))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, gallery.Scores{Top: 40, Last: 40, Rounds: 1}, got)
	assert.Equal(t, 1, store.Saves())
}

func TestGdataStoreDegraded(t *testing.T) {
	store := gallery.NewGdataStore(nil)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.NoError(t, store.Save(gallery.Scores{Top: 1}))
}

func openTestGdataStore(t *testing.T) *gallery.GdataStore {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	store, err := gallery.OpenGdataStore(fmt.Sprintf("gallery_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Skipf("gdata storage unavailable: %v", err)
	}
	return store
}

func TestGdataStoreRoundTrip(t *testing.T) {
	store := openTestGdataStore(t)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, got, "nothing saved yet")

	want := gallery.Scores{Top: 120, Last: 80, Rounds: 6}
	require.NoError(t, store.Save(want))

	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpenScoreStore(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		store := gallery.OpenScoreStore(gallery.StorageConfig{AppName: "gallery", Disabled: true})
		assert.IsType(t, &gallery.MemoryStore{}, store)
	})

	t.Run("no app name", func(t *testing.T) {
		store := gallery.OpenScoreStore(gallery.StorageConfig{})
		assert.IsType(t, &gallery.MemoryStore{}, store)
	})
}

func TestScoresSurviveWorlds(t *testing.T) {
	store := openTestGdataStore(t)

	cfg := gallery.DefaultConfig()
	cfg.Target.Row = []float64{0}

	first := newTestWorld(t, cfg, store)
	spawnProjectileAt(first, vec.New(0, 3))
	first.Scheduler.Once(0)
	require.Equal(t, 10, first.Board().Top)

	second := newTestWorld(t, cfg, store)
	second.Scheduler.Once(0)
	assert.Equal(t, 10, second.Board().Top)
	assert.Equal(t, 10, second.Board().Last)
	assert.Equal(t, 0, second.Board().Current)
}

type brokenStore struct {
	saves int
}

var errCorrupt = errors.New("corrupt score file")

func (s *brokenStore) Load() (gallery.Scores, error) { return gallery.Scores{}, errCorrupt }

func (s *brokenStore) Save(gallery.Scores) error {
	s.saves++
	return nil
}

func TestCloseBeforeFirstTickKeepsScores(t *testing.T) {
	stored := gallery.Scores{Top: 50, Last: 20, Rounds: 2}
	store := gallery.NewMemoryStore(stored)
	w := newTestWorld(t, gallery.DefaultConfig(), store)

	require.NoError(t, w.Close())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, 0, store.Saves())
}

func TestUnreadableScoresAreNotOverwritten(t *testing.T) {
	store := &brokenStore{}
	cfg := gallery.DefaultConfig()
	cfg.Target.Row = []float64{0}
	w := newTestWorld(t, cfg, store)

	spawnProjectileAt(w, vec.New(0, 3))
	w.Scheduler.Once(0)

	board := w.Board()
	assert.True(t, board.Recorded)
	assert.Equal(t, 10, board.Top, "the board still tracks the session")
	assert.Equal(t, 0, store.saves)

	press(w, ecs.KeyR)
	w.Scheduler.Once(0)
	w.Scheduler.Once(0)
	assert.Equal(t, 0, store.saves, "load errors stay in effect for later rounds")

	err := w.Close()
	require.Error(t, err)
	assert.ErrorIs(t, err, errCorrupt)
	assert.Equal(t, 0, store.saves)
}
