package session

import (
	"testing"
	"time"
)

func TestAggregatorPartialThenFinal(t *testing.T) {
	agg := NewAggregator()
	now := time.Now()

	agg.Ingest(TranscriptMessage{Id: "A", Role: "user", Text: "quiero presentar", Timestamp: now, IsFinal: false})
	agg.Ingest(TranscriptMessage{Id: "A", Role: "user", Text: "quiero presentar una tutela", Timestamp: now, IsFinal: true})
	agg.Ingest(TranscriptMessage{Id: "B", Role: "assistant", Text: "entiendo", Timestamp: now, IsFinal: false})

	msgs := agg.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Id != "A" || !msgs[0].IsFinal {
		t.Errorf("msgs[0] = %+v, want final A", msgs[0])
	}
	if msgs[0].Text != "quiero presentar una tutela" {
		t.Errorf("msgs[0].Text = %q, want updated text", msgs[0].Text)
	}
	if msgs[1].Id != "B" || msgs[1].IsFinal {
		t.Errorf("msgs[1] = %+v, want partial B", msgs[1])
	}
}

func TestAggregatorFinalIsImmutable(t *testing.T) {
	agg := NewAggregator()

	agg.Ingest(TranscriptMessage{Id: "A", Text: "final text", IsFinal: true})
	agg.Ingest(TranscriptMessage{Id: "A", Text: "late overwrite", IsFinal: true})

	msgs := agg.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len = %d, want 1", len(msgs))
	}
	if msgs[0].Text != "final text" {
		t.Errorf("Text = %q, final entries must not change", msgs[0].Text)
	}
}

func TestAggregatorFirstAppearanceOrder(t *testing.T) {
	agg := NewAggregator()
	base := time.Now()

	// B arrives first but carries a later timestamp; order must stay B, A
	agg.Ingest(TranscriptMessage{Id: "B", Text: "segundo", Timestamp: base.Add(5 * time.Second)})
	agg.Ingest(TranscriptMessage{Id: "A", Text: "primero", Timestamp: base})
	agg.Ingest(TranscriptMessage{Id: "B", Text: "segundo actualizado", Timestamp: base.Add(6 * time.Second)})

	msgs := agg.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Id != "B" || msgs[1].Id != "A" {
		t.Errorf("order = [%s, %s], want [B, A]", msgs[0].Id, msgs[1].Id)
	}
	if msgs[0].Text != "segundo actualizado" {
		t.Errorf("in-place update lost: %q", msgs[0].Text)
	}
}

func TestAggregatorClear(t *testing.T) {
	agg := NewAggregator()
	agg.Ingest(TranscriptMessage{Id: "A", Text: "x"})
	agg.Clear()

	if agg.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", agg.Len())
	}

	agg.Ingest(TranscriptMessage{Id: "A", Text: "nueva sesión"})
	if agg.Len() != 1 {
		t.Errorf("Len = %d, want 1", agg.Len())
	}
}
