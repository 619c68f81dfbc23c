package bridge

import (
	"sort"
	"sync"

	"github.com/specialistvlad/beanbridge/internal/beanid"
)

// nameSet is a concurrency-safe set of bean names keyed by canonical form.
type nameSet struct {
	mu    sync.RWMutex
	names map[string]beanid.Name
}

func newNameSet() *nameSet {
	return &nameSet{names: make(map[string]beanid.Name)}
}

func (s *nameSet) add(name beanid.Name) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[name.Canonical()] = name
}

// remove reports whether name was present.
func (s *nameSet) remove(name beanid.Name) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := name.Canonical()
	if _, ok := s.names[key]; !ok {
		return false
	}
	delete(s.names, key)
	return true
}

func (s *nameSet) contains(name beanid.Name) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name.Canonical()]
	return ok
}

func (s *nameSet) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// snapshot returns the names sorted by canonical form.
func (s *nameSet) snapshot() []beanid.Name {
	s.mu.RLock()
	keys := make([]string, 0, len(s.names))
	for k := range s.names {
		keys = append(keys, k)
	}
	out := make([]beanid.Name, len(keys))
	sort.Strings(keys)
	for i, k := range keys {
		out[i] = s.names[k]
	}
	s.mu.RUnlock()
	return out
}
