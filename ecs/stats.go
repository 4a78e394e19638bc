package ecs

import "sort"

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single non-empty archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats summarises the storage. Empty archetypes are left out of
// both ArchetypeCount and ArchetypeBreakdown.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		TotalEntityCount: s.Count(),
		SingletonCount:   len(s.singletons),
	}

	for _, a := range s.archetypes {
		if a.Len() == 0 {
			continue
		}
		names := make([]string, len(a.types))
		for i, t := range a.types {
			names[i] = t.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             a.id,
			ComponentTypes: names,
			EntityCount:    a.Len(),
		})
	}
	stats.ArchetypeCount = len(stats.ArchetypeBreakdown)

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
