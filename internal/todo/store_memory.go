package todo

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps todos in process memory.
//
// Lock order is idMu then mu. Only Create takes idMu, and it holds it until
// the new record is in the map, so an issued id is never visible without its
// record and never issued twice.
type MemStore struct {
	idMu   sync.Mutex
	nextID uint64

	mu sync.RWMutex
	m  map[uint64]Todo
}

func NewMemStore(seed ...Todo) *MemStore {
	s := &MemStore{m: make(map[uint64]Todo, len(seed)), nextID: 1}
	for _, t := range seed {
		s.m[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

func NewStore() Store {
	return NewMemStore(Seed()...)
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, title string) (Todo, error) {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	t := Todo{ID: s.nextID, Title: title}
	s.nextID++

	s.mu.Lock()
	s.m[t.ID] = t
	s.mu.Unlock()

	return t, nil
}

func (s *MemStore) List(ctx context.Context) ([]Todo, error) {
	s.mu.RLock()
	out := make([]Todo, 0, len(s.m))
	for _, t := range s.m {
		out = append(out, t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id uint64) (Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.m[id]
	if !ok {
		return Todo{}, notFound(id)
	}
	return t, nil
}

func (s *MemStore) Update(ctx context.Context, id uint64, upd UpdateTodo) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.m[id]
	if !ok {
		return Todo{}, notFound(id)
	}

	upd.apply(&t)
	s.m[id] = t
	return t, nil
}

func (s *MemStore) Delete(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[id]; !ok {
		return notFound(id)
	}
	delete(s.m, id)
	return nil
}

func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
