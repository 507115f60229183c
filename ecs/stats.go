package ecs

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	ComponentTypeCount int
	TotalComponents    int
	ComponentBreakdown []ComponentStats
}

// ComponentStats describes the storage of a single component type. Slots is
// the number of cells the backing storage has allocated, Occupied the number
// of cells holding data.
type ComponentStats struct {
	Type     string
	Kind     StorageKind
	Count    int
	Slots    int
	Occupied int
}

// CollectStats gathers per-component-type statistics, sorted by type name.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ComponentTypeCount: len(s.storages),
		ComponentBreakdown: make([]ComponentStats, 0, len(s.storages)),
	}

	for _, t := range s.componentTypes() {
		cs := s.storages[t]
		slots, occupied := cs.footprint()
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Type:     t.String(),
			Kind:     cs.Kind(),
			Count:    cs.Len(),
			Slots:    slots,
			Occupied: occupied,
		})
		stats.TotalComponents += cs.Len()
	}

	return stats
}
