package observability

import (
	"testing"
	"time"
)

func TestExchangeStageWindowSnapshot(t *testing.T) {
	w := newExchangeStageWindow(8)
	for i := 1; i <= 10; i++ {
		w.Observe("respond", float64(i*10))
	}
	w.Observe("classify", 1.5)
	w.ObserveIndicator("reply_fallback")
	w.ObserveIndicator("reply_fallback")

	snap := w.Snapshot()
	if snap.WindowSize != 8 {
		t.Fatalf("window size = %d, want 8", snap.WindowSize)
	}
	if len(snap.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(snap.Stages))
	}

	var respond *ExchangeStageStats
	for i := range snap.Stages {
		if snap.Stages[i].Stage == "respond" {
			respond = &snap.Stages[i]
		}
	}
	if respond == nil {
		t.Fatal("missing respond stage")
	}
	// The ring keeps the last 8 samples: 30..100.
	if respond.Samples != 8 {
		t.Fatalf("respond samples = %d, want 8", respond.Samples)
	}
	if respond.LastMS != 100 {
		t.Fatalf("respond last = %v, want 100", respond.LastMS)
	}
	if respond.P50MS < 30 || respond.P50MS > 100 {
		t.Fatalf("respond p50 = %v, outside the sample range", respond.P50MS)
	}

	if len(snap.Indicators) != 1 || snap.Indicators[0].Count != 2 {
		t.Fatalf("indicators = %+v, want one reply_fallback with count 2", snap.Indicators)
	}
}

func TestExchangeStageWindowIgnoresBadInput(t *testing.T) {
	w := newExchangeStageWindow(4)
	w.Observe("", 10)
	w.Observe("respond", -1)
	w.ObserveIndicator("  ")

	snap := w.Snapshot()
	if len(snap.Stages) != 0 {
		t.Fatalf("stages = %d, want 0", len(snap.Stages))
	}
	if len(snap.Indicators) != 0 {
		t.Fatalf("indicators = %d, want 0", len(snap.Indicators))
	}
}

func TestMetricsObserveExchangeStage(t *testing.T) {
	m := NewMetrics("test_observability_observe_stage")
	m.ObserveExchangeStage("classify", 1500*time.Microsecond)

	snap := m.SnapshotExchangeStages()
	if len(snap.Stages) != 1 {
		t.Fatalf("stages = %d, want 1", len(snap.Stages))
	}
	if snap.Stages[0].LastMS != 1.5 {
		t.Fatalf("last = %v, want 1.5", snap.Stages[0].LastMS)
	}
}
