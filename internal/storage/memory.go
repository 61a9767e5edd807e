package storage

import (
	"context"
	"sort"
	"sync"

	"nqueens/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	profiles    *model.ProfileSet
	runs        map[string]model.RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.profiles = nil
	s.runs = make(map[string]model.RunRecord)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveProfiles(_ context.Context, profiles model.ProfileSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := cloneProfileSet(profiles)
	s.profiles = &copied
	return nil
}

func (s *MemoryStore) GetProfiles(_ context.Context) (model.ProfileSet, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profiles == nil {
		return model.ProfileSet{}, false, nil
	}
	return cloneProfileSet(*s.profiles), true, nil
}

func (s *MemoryStore) SaveRunRecord(_ context.Context, record model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[record.RunID] = cloneRunRecord(record)
	return nil
}

func (s *MemoryStore) GetRunRecord(_ context.Context, runID string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.runs[runID]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	return cloneRunRecord(record), true, nil
}

func (s *MemoryStore) ListRunRecords(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		out = append(out, cloneRunRecord(record))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAtUTC != out[j].CreatedAtUTC {
			return out[i].CreatedAtUTC < out[j].CreatedAtUTC
		}
		return out[i].RunID < out[j].RunID
	})
	return out, nil
}

func cloneProfileSet(profiles model.ProfileSet) model.ProfileSet {
	copied := profiles
	copied.Profiles = make(map[string]model.Parameters, len(profiles.Profiles))
	for name, params := range profiles.Profiles {
		copied.Profiles[name] = params
	}
	return copied
}

func cloneRunRecord(record model.RunRecord) model.RunRecord {
	copied := record
	copied.BestGenome = append([]int(nil), record.BestGenome...)
	copied.BestByGeneration = append([]int(nil), record.BestByGeneration...)
	return copied
}
