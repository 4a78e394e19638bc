package gallery

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Scores is the persisted part of the ScoreBoard.
type Scores struct {
	Top    int `yaml:"top"`
	Last   int `yaml:"last"`
	Rounds int `yaml:"rounds"`
}

// ScoreStore loads and saves high scores between runs.
type ScoreStore interface {
	Load() (Scores, error)
	Save(Scores) error
}

// MemoryStore keeps scores for the lifetime of the process only.
type MemoryStore struct {
	scores Scores
	saves  int
}

// NewMemoryStore returns a store holding initial.
func NewMemoryStore(initial Scores) *MemoryStore {
	return &MemoryStore{scores: initial}
}

func (m *MemoryStore) Load() (Scores, error) {
	return m.scores, nil
}

func (m *MemoryStore) Save(s Scores) error {
	m.scores = s
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int {
	return m.saves
}

const (
	scoresObject   = "scores"
	scoresProperty = "gallery"
)

// GdataStore persists scores as YAML in the per-user data directory
// managed by gdata. A nil manager degrades to a store that never has
// anything saved and silently drops writes.
type GdataStore struct {
	manager *gdata.Manager
}

// OpenGdataStore opens (creating if needed) the data directory for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open score storage %q: %w", appName, err)
	}
	return NewGdataStore(manager), nil
}

// NewGdataStore wraps manager. A nil manager gives a store that loads
// nothing and discards saves.
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	return &GdataStore{manager: manager}
}

func (g *GdataStore) Load() (Scores, error) {
	if g.manager == nil {
		return Scores{}, nil
	}
	if !g.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return Scores{}, nil
	}

	data, err := g.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return Scores{}, fmt.Errorf("failed to load scores: %w", err)
	}

	var s Scores
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scores{}, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	return s, nil
}

func (g *GdataStore) Save(s Scores) error {
	if g.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := g.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	log.Printf("[ScoreStore] Saved scores top=%d last=%d", s.Top, s.Last)
	return nil
}

// OpenScoreStore picks the store described by cfg. Persistence problems
// are not fatal: the game falls back to an in-memory store.
func OpenScoreStore(cfg StorageConfig) ScoreStore {
	if cfg.Disabled || cfg.AppName == "" {
		return NewMemoryStore(Scores{})
	}
	store, err := OpenGdataStore(cfg.AppName)
	if err != nil {
		log.Printf("[ScoreStore] Warning: %v (scores will not be saved)", err)
		return NewMemoryStore(Scores{})
	}
	return store
}
