package receipt

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockCmdable struct {
	kv  map[string]string
	set map[string]map[string]float64
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		kv:  map[string]string{},
		set: map[string]map[string]float64{},
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.kv[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, ok := m.kv[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	switch v := value.(type) {
	case []byte:
		m.kv[key] = string(v)
	case string:
		m.kv[key] = v
	}
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) ZAdd(_ context.Context, key string, members ...redis.Z) *redis.IntCmd {
	if m.set[key] == nil {
		m.set[key] = map[string]float64{}
	}
	for _, z := range members {
		m.set[key][z.Member.(string)] = z.Score
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (m *mockCmdable) ZRange(_ context.Context, key string, _, _ int64) *redis.StringSliceCmd {
	scores := m.set[key]
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return scores[ids[i]] < scores[ids[j]] })
	return redis.NewStringSliceResult(ids, nil)
}

func newRedisMock(*testing.T) Store {
	return &RedisStore{store: newMockCmdable()}
}

func TestRedisStore_Keys(t *testing.T) {
	if got := receiptKey("r_1"); got != "storefront:receipt:r_1" {
		t.Fatalf("receipt key=%q", got)
	}
	if got := indexKey(); got != "storefront:receipts" {
		t.Fatalf("index key=%q", got)
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	m := newMockCmdable()
	m.kv[receiptKey("r_bad")] = "{not json"
	s := &RedisStore{store: m}

	if _, _, err := s.Get(context.Background(), "r_bad"); err == nil {
		t.Fatalf("expected decode error")
	}
}
