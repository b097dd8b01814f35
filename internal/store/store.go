// Package store defines the key-value contract the indexers depend on.
package store

import "context"

// OpKind enumerates the writes a batch can carry.
type OpKind int

const (
	// OpSet stores a string value under a key.
	OpSet OpKind = iota + 1
	// OpZAdd adds a scored member to a sorted set.
	OpZAdd
	// OpDel removes a key of any kind.
	OpDel
)

func (k OpKind) String() string {
	switch k {
	case OpSet:
		return "set"
	case OpZAdd:
		return "zadd"
	case OpDel:
		return "del"
	default:
		return "unknown"
	}
}

// Op is a single write inside an atomic batch. For OpZAdd, Value holds the member.
type Op struct {
	Kind  OpKind
	Key   string
	Value string
	Score float64
}

// Set builds a string write.
func Set(key, value string) Op {
	return Op{Kind: OpSet, Key: key, Value: value}
}

// ZAdd builds a sorted-set write.
func ZAdd(key string, score float64, member string) Op {
	return Op{Kind: OpZAdd, Key: key, Value: member, Score: score}
}

// Del builds a key removal.
func Del(key string) Op {
	return Op{Kind: OpDel, Key: key}
}

// ScoredMember is a sorted-set entry.
type ScoredMember struct {
	Member string
	Score  float64
}

// Store is a shared key-value store with strings and sorted sets.
// Sorted sets order members by score, then lexically by member.
type Store interface {
	SetString(ctx context.Context, key, value string) error
	// GetString returns found=false when the key does not exist.
	GetString(ctx context.Context, key string) (value string, found bool, err error)
	// GetStrings fetches many keys in one round trip; missing keys yield "".
	GetStrings(ctx context.Context, keys []string) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)

	AddScored(ctx context.Context, key string, score float64, member string) error
	ZCard(ctx context.Context, key string) (int64, error)
	// ZFirst returns the member with the lowest score.
	ZFirst(ctx context.Context, key string) (ScoredMember, bool, error)
	// ZLast returns the member with the highest score.
	ZLast(ctx context.Context, key string) (ScoredMember, bool, error)
	// ZRangeAll returns every member in ascending score order.
	ZRangeAll(ctx context.Context, key string) ([]string, error)

	// SubmitBatch applies all operations or none of them.
	SubmitBatch(ctx context.Context, ops []Op) error
}
