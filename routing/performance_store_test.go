package routing

import "testing"

func TestInMemoryPerformanceStoreRollingAverage(t *testing.T) {
	s := NewInMemoryPerformanceStore()
	s.Update("alpha", 0.10, 0.8)
	s.Update("alpha", 0.20, 0.6)

	sample, ok := s.Get("alpha")
	if !ok {
		t.Fatal("expected sample to exist")
	}
	if sample.Count != 2 {
		t.Fatalf("expected count 2, got %d", sample.Count)
	}
	wantCost := 0.15
	if diff := sample.AvgCost - wantCost; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected avg cost %.4f, got %.4f", wantCost, sample.AvgCost)
	}
}

func TestInMemoryPerformanceStoreMissing(t *testing.T) {
	s := NewInMemoryPerformanceStore()
	if _, ok := s.Get("nope"); ok {
		t.Fatal("expected not found")
	}
}

func TestRollingAverageFirstSample(t *testing.T) {
	if got := rollingAverage(0, 0.5, 0); got != 0.5 {
		t.Fatalf("expected 0.5, got %f", got)
	}
}
