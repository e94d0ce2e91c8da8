package farq

import "testing"

func TestRTTEstimatorFirstSampleSeedsSrtt(t *testing.T) {
	var e rttEstimator
	e.sample(100, 100, 100)
	if e.srtt != 100 {
		t.Fatalf("srtt = %d, want 100", e.srtt)
	}
	if e.rttvar != 50 {
		t.Fatalf("rttvar = %d, want 50", e.rttvar)
	}
	if e.rto < 100 {
		t.Fatalf("rto = %d, want >= minRTO 100", e.rto)
	}
}

func TestRTTEstimatorConverges(t *testing.T) {
	var e rttEstimator
	for i := 0; i < 50; i++ {
		e.sample(100, 100, 30)
	}
	if e.srtt < 95 || e.srtt > 105 {
		t.Fatalf("srtt did not converge near 100: got %d", e.srtt)
	}
	if e.rttvar > 5 {
		t.Fatalf("rttvar did not shrink for a stable RTT: got %d", e.rttvar)
	}
}

func TestRTTEstimatorClampsToMinRTO(t *testing.T) {
	var e rttEstimator
	e.sample(1, 10, 100)
	if e.rto != 100 {
		t.Fatalf("rto = %d, want clamped to minRTO 100", e.rto)
	}
}

func TestRTTEstimatorClampsToMax(t *testing.T) {
	var e rttEstimator
	e.sample(1_000_000, 100, 30)
	if e.rto != 60000 {
		t.Fatalf("rto = %d, want clamped to 60000", e.rto)
	}
}

func TestRTTEstimatorIgnoresNegativeSample(t *testing.T) {
	var e rttEstimator
	e.sample(-1, 100, 30)
	if e.inited {
		t.Fatal("negative rtt sample must not seed the estimator")
	}
}
