// Package memory implements store.Store in process memory.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/goodnatureofminers/depositledger/internal/store"
)

type sortedSet struct {
	scores  map[string]float64
	ordered []store.ScoredMember
}

func newSortedSet() *sortedSet {
	return &sortedSet{scores: make(map[string]float64)}
}

func less(a, b store.ScoredMember) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Member < b.Member
}

func (z *sortedSet) search(e store.ScoredMember) int {
	i, _ := slices.BinarySearchFunc(z.ordered, e, func(a, b store.ScoredMember) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})
	return i
}

func (z *sortedSet) add(member string, score float64) {
	if old, ok := z.scores[member]; ok {
		if old == score {
			return
		}
		i := z.search(store.ScoredMember{Member: member, Score: old})
		z.ordered = slices.Delete(z.ordered, i, i+1)
	}
	z.scores[member] = score
	e := store.ScoredMember{Member: member, Score: score}
	z.ordered = slices.Insert(z.ordered, z.search(e), e)
}

// Store is a mutex-guarded store.Store. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	strings map[string]string
	zsets   map[string]*sortedSet
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		strings: make(map[string]string),
		zsets:   make(map[string]*sortedSet),
	}
}

// Flush drops every key.
func (s *Store) Flush(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strings = make(map[string]string)
	s.zsets = make(map[string]*sortedSet)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) SetString(ctx context.Context, key, value string) error {
	return s.SubmitBatch(ctx, []store.Op{store.Set(key, value)})
}

func (s *Store) GetString(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, store.Wrap("get", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.zsets[key]; ok {
		return "", false, store.Wrap("get", key, store.ErrWrongType)
	}
	v, ok := s.strings[key]
	return v, ok, nil
}

func (s *Store) GetStrings(ctx context.Context, keys []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("mget", "", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([]string, len(keys))
	for i, key := range keys {
		values[i] = s.strings[key]
	}
	return values, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, store.Wrap("exists", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.strings[key]; ok {
		return true, nil
	}
	_, ok := s.zsets[key]
	return ok, nil
}

func (s *Store) AddScored(ctx context.Context, key string, score float64, member string) error {
	return s.SubmitBatch(ctx, []store.Op{store.ZAdd(key, score, member)})
}

func (s *Store) zset(op, key string) (*sortedSet, error) {
	if _, ok := s.strings[key]; ok {
		return nil, store.Wrap(op, key, store.ErrWrongType)
	}
	return s.zsets[key], nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, store.Wrap("zcard", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	z, err := s.zset("zcard", key)
	if err != nil || z == nil {
		return 0, err
	}
	return int64(len(z.ordered)), nil
}

func (s *Store) ZFirst(ctx context.Context, key string) (store.ScoredMember, bool, error) {
	return s.edge(ctx, "zrange", key, true)
}

func (s *Store) ZLast(ctx context.Context, key string) (store.ScoredMember, bool, error) {
	return s.edge(ctx, "zrevrange", key, false)
}

func (s *Store) edge(ctx context.Context, op, key string, first bool) (store.ScoredMember, bool, error) {
	if err := ctx.Err(); err != nil {
		return store.ScoredMember{}, false, store.Wrap(op, key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	z, err := s.zset(op, key)
	if err != nil {
		return store.ScoredMember{}, false, err
	}
	if z == nil || len(z.ordered) == 0 {
		return store.ScoredMember{}, false, nil
	}
	if first {
		return z.ordered[0], true, nil
	}
	return z.ordered[len(z.ordered)-1], true, nil
}

func (s *Store) ZRangeAll(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap("zrangebyscore", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	z, err := s.zset("zrangebyscore", key)
	if err != nil || z == nil {
		return nil, err
	}
	members := make([]string, len(z.ordered))
	for i, e := range z.ordered {
		members[i] = e.Member
	}
	return members, nil
}

// Snapshot is a deep copy of every key held by a Store.
type Snapshot struct {
	Strings    map[string]string
	SortedSets map[string][]store.ScoredMember
}

// Snapshot copies the whole store content.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Strings:    make(map[string]string, len(s.strings)),
		SortedSets: make(map[string][]store.ScoredMember, len(s.zsets)),
	}
	for k, v := range s.strings {
		snap.Strings[k] = v
	}
	for k, z := range s.zsets {
		snap.SortedSets[k] = slices.Clone(z.ordered)
	}
	return snap
}

// SubmitBatch validates every operation before applying any of them.
func (s *Store) SubmitBatch(ctx context.Context, ops []store.Op) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap("exec", "", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	kinds := make(map[string]store.OpKind, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case store.OpSet:
			if _, ok := s.zsets[op.Key]; ok {
				return store.Wrap(op.Kind.String(), op.Key, store.ErrWrongType)
			}
		case store.OpZAdd:
			if _, ok := s.strings[op.Key]; ok {
				return store.Wrap(op.Kind.String(), op.Key, store.ErrWrongType)
			}
		case store.OpDel:
			continue
		default:
			return store.Wrap("exec", op.Key, fmt.Errorf("unsupported operation %d", op.Kind))
		}
		if prev, ok := kinds[op.Key]; ok && prev != op.Kind {
			return store.Wrap(op.Kind.String(), op.Key, store.ErrWrongType)
		}
		kinds[op.Key] = op.Kind
	}

	for _, op := range ops {
		switch op.Kind {
		case store.OpSet:
			s.strings[op.Key] = op.Value
		case store.OpZAdd:
			z, ok := s.zsets[op.Key]
			if !ok {
				z = newSortedSet()
				s.zsets[op.Key] = z
			}
			z.add(op.Value, op.Score)
		case store.OpDel:
			delete(s.strings, op.Key)
			delete(s.zsets, op.Key)
		}
	}
	return nil
}

var _ store.Store = (*Store)(nil)
