package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/farqproto/farq/farq"
)

func TestCollectorReportsTrackedEngine(t *testing.T) {
	e := farq.New(42, nil)
	e.SetOutput(func(_ []byte, _ any) error { return nil })

	c := NewCollector("farqtest", []string{"role"})
	c.Track(e, "A")

	registry := prometheus.NewRegistry()
	registry.MustRegister(c)

	count, err := testutil.GatherAndCount(registry)
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one metric from a tracked engine")
	}
}

func TestCollectorUntrackStopsReporting(t *testing.T) {
	e := farq.New(1, nil)
	c := NewCollector("farqtest", nil)
	c.Track(e)
	c.Untrack(e.Conv())

	registry := prometheus.NewRegistry()
	registry.MustRegister(c)
	count, err := testutil.GatherAndCount(registry)
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0 after Untrack", count)
	}
}
