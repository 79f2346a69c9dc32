package enquiry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
)

type flushRecorder struct {
	mu     sync.Mutex
	writes []quantityWrite
}

func (r *flushRecorder) record(_ context.Context, cred draftorders.Credential, variantID string, quantity int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, quantityWrite{cred: cred, variant: variantID, quantity: quantity})
}

func (r *flushRecorder) snapshot() []quantityWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]quantityWrite, len(r.writes))
	copy(out, r.writes)
	return out
}

func TestCoalescerCollapsesRapidWrites(t *testing.T) {
	rec := &flushRecorder{}
	c := NewQuantityCoalescer(30*time.Millisecond, rec.record)
	c.Start()
	defer c.Stop()

	cred := draftorders.Credential{DraftOrderID: "D1", Token: "T1"}
	c.Schedule(cred, "V1", 2)
	c.Schedule(cred, "V1", 3)
	c.Schedule(cred, "V1", 5)

	time.Sleep(80 * time.Millisecond)

	writes := rec.snapshot()
	if len(writes) != 1 {
		t.Fatalf("expected one flush, got %d", len(writes))
	}
	if writes[0].quantity != 5 {
		t.Fatalf("expected last quantity to win, got %d", writes[0].quantity)
	}
}

func TestCoalescerKeysByDraftAndVariant(t *testing.T) {
	rec := &flushRecorder{}
	c := NewQuantityCoalescer(20*time.Millisecond, rec.record)
	c.Start()
	defer c.Stop()

	cred := draftorders.Credential{DraftOrderID: "D1", Token: "T1"}
	c.Schedule(cred, "V1", 2)
	c.Schedule(cred, "V2", 4)

	time.Sleep(60 * time.Millisecond)

	writes := rec.snapshot()
	if len(writes) != 2 {
		t.Fatalf("expected two flushes, got %d", len(writes))
	}
}

func TestCoalescerStopCancelsPendingTimers(t *testing.T) {
	rec := &flushRecorder{}
	c := NewQuantityCoalescer(30*time.Millisecond, rec.record)
	c.Start()

	cred := draftorders.Credential{DraftOrderID: "D1", Token: "T1"}
	c.Schedule(cred, "V1", 2)
	c.Stop()

	time.Sleep(60 * time.Millisecond)

	if writes := rec.snapshot(); len(writes) != 0 {
		t.Fatalf("expected no flush after stop, got %d", len(writes))
	}
}

func TestCoalescerFlushesImmediatelyWhenStopped(t *testing.T) {
	rec := &flushRecorder{}
	c := NewQuantityCoalescer(time.Hour, rec.record)

	cred := draftorders.Credential{DraftOrderID: "D1", Token: "T1"}
	c.Schedule(cred, "V1", 3)

	if writes := rec.snapshot(); len(writes) != 1 || writes[0].quantity != 3 {
		t.Fatalf("expected immediate flush, got %v", writes)
	}
}
