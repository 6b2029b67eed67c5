package cache

import (
	"container/list"
	"sync"
	"time"
)

// Policy decides which entry to evict when the store is full. The store owns
// all locking; policies are plain bookkeeping and composed into a single
// Store rather than subclassed.
type Policy interface {
	Added(key string)
	Touched(key string)
	Removed(key string)
	Victim() (string, bool)
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store is a bounded TTL cache for serialized responses. Eviction order is
// delegated to the configured Policy.
type Store struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	policy   Policy
	entries  map[string]entry
	now      func() time.Time
}

func New(capacity int, ttl time.Duration, policy Policy) *Store {
	if capacity <= 0 {
		capacity = 128
	}
	return &Store{
		capacity: capacity,
		ttl:      ttl,
		policy:   policy,
		entries:  make(map[string]entry, capacity),
		now:      time.Now,
	}
}

// ForPolicy builds a store for a policy name, defaulting to LRU.
func ForPolicy(name string, capacity int, ttl time.Duration) *Store {
	if name == "lfu" {
		return New(capacity, ttl, NewLFU())
	}
	return New(capacity, ttl, NewLRU())
}

func (s *Store) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		delete(s.entries, key)
		s.policy.Removed(key)
		return nil, false
	}
	s.policy.Touched(key)
	return e.value, true
}

func (s *Store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists {
		for len(s.entries) >= s.capacity {
			victim, ok := s.policy.Victim()
			if !ok {
				break
			}
			delete(s.entries, victim)
			s.policy.Removed(victim)
		}
		s.policy.Added(key)
	} else {
		s.policy.Touched(key)
	}
	s.entries[key] = entry{value: value, expiresAt: s.now().Add(s.ttl)}
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		s.policy.Removed(key)
	}
}

// Purge drops every entry. Called when the cached data set is mutated.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		s.policy.Removed(key)
	}
	s.entries = make(map[string]entry, s.capacity)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// lruPolicy evicts the least recently used key.
type lruPolicy struct {
	order *list.List
	index map[string]*list.Element
}

func NewLRU() Policy {
	return &lruPolicy{order: list.New(), index: make(map[string]*list.Element)}
}

func (p *lruPolicy) Added(key string) {
	p.index[key] = p.order.PushFront(key)
}

func (p *lruPolicy) Touched(key string) {
	if el, ok := p.index[key]; ok {
		p.order.MoveToFront(el)
	}
}

func (p *lruPolicy) Removed(key string) {
	if el, ok := p.index[key]; ok {
		p.order.Remove(el)
		delete(p.index, key)
	}
}

func (p *lruPolicy) Victim() (string, bool) {
	back := p.order.Back()
	if back == nil {
		return "", false
	}
	return back.Value.(string), true
}

// lfuPolicy evicts the least frequently used key, breaking ties by age.
type lfuPolicy struct {
	hits    map[string]int
	arrival map[string]int64
	seq     int64
}

func NewLFU() Policy {
	return &lfuPolicy{hits: make(map[string]int), arrival: make(map[string]int64)}
}

func (p *lfuPolicy) Added(key string) {
	p.seq++
	p.hits[key] = 1
	p.arrival[key] = p.seq
}

func (p *lfuPolicy) Touched(key string) {
	if _, ok := p.hits[key]; ok {
		p.hits[key]++
	}
}

func (p *lfuPolicy) Removed(key string) {
	delete(p.hits, key)
	delete(p.arrival, key)
}

func (p *lfuPolicy) Victim() (string, bool) {
	var (
		victim string
		found  bool
	)
	for key, count := range p.hits {
		if !found {
			victim, found = key, true
			continue
		}
		if count < p.hits[victim] || (count == p.hits[victim] && p.arrival[key] < p.arrival[victim]) {
			victim = key
		}
	}
	return victim, found
}
