package job

import "sync"

// StatusStore holds the live status record of each active job. Every job id
// has exactly one writer (its worker); watchers only read. Delete is
// idempotent so concurrent watchers can race on cleanup safely.
type StatusStore struct {
	mu sync.RWMutex
	m  map[string]Status
}

func NewStatusStore() *StatusStore {
	return &StatusStore{m: make(map[string]Status)}
}

func (s *StatusStore) Put(id string, st Status) {
	s.mu.Lock()
	s.m[id] = st
	s.mu.Unlock()
}

func (s *StatusStore) Get(id string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[id]
	return st, ok
}

func (s *StatusStore) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// ResultStore holds terminal outcomes until consumed. A result that is never
// fetched stays for process lifetime; bounded by job volume, this is a known
// limitation carried over from the original service.
type ResultStore struct {
	mu sync.Mutex
	m  map[string]Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{m: make(map[string]Result)}
}

func (s *ResultStore) Put(id string, r Result) {
	s.mu.Lock()
	s.m[id] = r
	s.mu.Unlock()
}

// Consume returns the result for id and removes it in the same operation.
// A second call for the same id misses.
func (s *ResultStore) Consume(id string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.m[id]
	if ok {
		delete(s.m, id)
	}
	return r, ok
}
