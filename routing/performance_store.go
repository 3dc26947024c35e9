package routing

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"
)

// PerformanceSample is one model's rolling average of actual cost and
// actual confidence, updated after each successful execution.
type PerformanceSample struct {
	AvgCost       float64
	AvgConfidence float64
	Count         int
}

// PerformanceStore is where the CostOptimizer keeps its per-model rolling
// averages. Whether this persists across process restarts is left
// unspecified by the specification; InMemoryPerformanceStore is the
// default (process-local only), and RedisPerformanceStore is available
// for deployments that want the history shared across processes.
type PerformanceStore interface {
	Get(modelID string) (PerformanceSample, bool)
	Update(modelID string, actualCost, actualConfidence float64)
}

// InMemoryPerformanceStore is the process-local default.
type InMemoryPerformanceStore struct {
	mu      sync.Mutex
	samples map[string]PerformanceSample
}

// NewInMemoryPerformanceStore builds an empty store.
func NewInMemoryPerformanceStore() *InMemoryPerformanceStore {
	return &InMemoryPerformanceStore{samples: make(map[string]PerformanceSample)}
}

// Get implements PerformanceStore.
func (s *InMemoryPerformanceStore) Get(modelID string) (PerformanceSample, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample, ok := s.samples[modelID]
	return sample, ok
}

// Update implements PerformanceStore, folding the new observation into the
// model's running average atomically per key.
func (s *InMemoryPerformanceStore) Update(modelID string, actualCost, actualConfidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sample := s.samples[modelID]
	sample.AvgCost = rollingAverage(sample.AvgCost, actualCost, sample.Count)
	sample.AvgConfidence = rollingAverage(sample.AvgConfidence, actualConfidence, sample.Count)
	sample.Count++
	s.samples[modelID] = sample
}

func rollingAverage(prevAvg, newValue float64, prevCount int) float64 {
	if prevCount == 0 {
		return newValue
	}
	return (prevAvg*float64(prevCount) + newValue) / float64(prevCount+1)
}

// RedisPerformanceStore shares per-model rolling performance across
// processes as a JSON-encoded string value, keyed by
// "ai-council:perf:<modelID>". Updates are read-modify-write under the key;
// Redis's single-threaded command execution makes each SET call atomic, which
// is sufficient at the request rates this core targets.
type RedisPerformanceStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisPerformanceStore builds a store against an existing redis client.
func NewRedisPerformanceStore(client *redis.Client) *RedisPerformanceStore {
	return &RedisPerformanceStore{client: client, keyPrefix: "ai-council:perf:"}
}

func (s *RedisPerformanceStore) key(modelID string) string {
	return s.keyPrefix + modelID
}

// Get implements PerformanceStore.
func (s *RedisPerformanceStore) Get(modelID string) (PerformanceSample, bool) {
	ctx := context.Background()
	raw, err := s.client.Get(ctx, s.key(modelID)).Result()
	if err != nil {
		return PerformanceSample{}, false
	}
	var sample PerformanceSample
	if err := json.Unmarshal([]byte(raw), &sample); err != nil {
		return PerformanceSample{}, false
	}
	return sample, true
}

// Update implements PerformanceStore.
func (s *RedisPerformanceStore) Update(modelID string, actualCost, actualConfidence float64) {
	ctx := context.Background()
	sample, _ := s.Get(modelID)
	sample.AvgCost = rollingAverage(sample.AvgCost, actualCost, sample.Count)
	sample.AvgConfidence = rollingAverage(sample.AvgConfidence, actualConfidence, sample.Count)
	sample.Count++

	encoded, err := json.Marshal(sample)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, s.key(modelID), encoded, 0).Err()
}
