package strategy

import (
	"maps"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// memo is the memoization layer shared by the three strategy functions: a
// process-wide map guarded by an RWMutex, with a singleflight group
// guaranteeing at most one concurrent computation per key -- a second caller
// with the same key blocks until the first result is stored.
//
// Recursive calls always use strictly "smaller" keys (fewer rerolls or more
// used fields), so a computation can never re-enter its own key.
type memo[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	group   singleflight.Group
}

func newMemo[V any]() *memo[V] {
	return &memo[V]{entries: make(map[string]V)}
}

func (m *memo[V]) computeOnce(key string, compute func() V) V {
	m.mu.RLock()
	value, found := m.entries[key]
	m.mu.RUnlock()
	if found {
		return value
	}
	result, _, _ := m.group.Do(key, func() (any, error) {
		// A previous flight may have stored the entry between our
		// lookup and Do.
		m.mu.RLock()
		value, found := m.entries[key]
		m.mu.RUnlock()
		if found {
			return value, nil
		}
		value = compute()
		m.mu.Lock()
		m.entries[key] = value
		m.mu.Unlock()
		return value, nil
	})
	return result.(V)
}

func (m *memo[V]) snapshot() map[string]V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.entries)
}

func (m *memo[V]) populate(entries map[string]V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	maps.Copy(m.entries, entries)
}

func (m *memo[V]) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// The process-wide caches. They grow monotonically and are never evicted;
// hosts may persist them through DumpCaches/PopulateCaches.
var (
	probabilityCache = newMemo[ProbabilitiesToRoll]()
	rerollCache      = newMemo[RerollRecomm]()
	fieldCache       = newMemo[FieldRecomm]()
)

// Caches is a stable snapshot of the three strategy caches, keyed by the
// same compact strings used in memory.
type Caches struct {
	ProbabilityToRoll map[string]ProbabilitiesToRoll
	ChooseReroll      map[string]RerollRecomm
	ChooseField       map[string]FieldRecomm
}

// DumpCaches snapshots the three caches, in parallel.
func DumpCaches() Caches {
	var caches Caches
	var group errgroup.Group
	group.Go(func() error {
		caches.ProbabilityToRoll = probabilityCache.snapshot()
		return nil
	})
	group.Go(func() error {
		caches.ChooseReroll = rerollCache.snapshot()
		return nil
	})
	group.Go(func() error {
		caches.ChooseField = fieldCache.snapshot()
		return nil
	})
	_ = group.Wait()
	return caches
}

// PopulateCaches merges a previously dumped snapshot into the live caches,
// in parallel.
func PopulateCaches(caches Caches) {
	var group errgroup.Group
	group.Go(func() error {
		probabilityCache.populate(caches.ProbabilityToRoll)
		return nil
	})
	group.Go(func() error {
		rerollCache.populate(caches.ChooseReroll)
		return nil
	})
	group.Go(func() error {
		fieldCache.populate(caches.ChooseField)
		return nil
	})
	_ = group.Wait()
}

// CacheSizes returns the entry counts of the three caches, for logging.
func CacheSizes() (probabilityToRoll, chooseReroll, chooseField int) {
	return probabilityCache.len(), rerollCache.len(), fieldCache.len()
}
