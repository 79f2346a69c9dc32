package enquiry

import (
	"context"
	"sync"
	"time"

	"github.com/diarmuidw/enquiry-backend/internal/draftorders"
)

// quantityWrite is one pending coalesced write.
type quantityWrite struct {
	cred     draftorders.Credential
	variant  string
	quantity int
}

// QuantityCoalescer folds rapid quantity changes for the same (draft, variant)
// into a single network write once the change stream has been quiet for the
// configured window. Callers see their value immediately; only the write to
// the remote API is deferred.
type QuantityCoalescer struct {
	mu      sync.Mutex
	window  time.Duration
	flush   func(ctx context.Context, write quantityWrite)
	timers  map[string]*time.Timer
	pending map[string]quantityWrite
	running bool
}

func NewQuantityCoalescer(window time.Duration, flush func(ctx context.Context, cred draftorders.Credential, variantID string, quantity int)) *QuantityCoalescer {
	if window <= 0 {
		window = time.Second
	}
	return &QuantityCoalescer{
		window: window,
		flush: func(ctx context.Context, write quantityWrite) {
			flush(ctx, write.cred, write.variant, write.quantity)
		},
		timers:  map[string]*time.Timer{},
		pending: map[string]quantityWrite{},
	}
}

// Start enables scheduling. Schedule calls before Start flush immediately.
func (c *QuantityCoalescer) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
}

// Stop cancels every pending timer without flushing. Writes scheduled after
// Stop bypass the window and apply immediately.
func (c *QuantityCoalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	for key, timer := range c.timers {
		timer.Stop()
		delete(c.timers, key)
		delete(c.pending, key)
	}
}

// Schedule records the latest requested quantity and (re)arms the timer for
// its (draft, variant) key. Later calls supersede earlier ones.
func (c *QuantityCoalescer) Schedule(cred draftorders.Credential, variantID string, quantity int) {
	write := quantityWrite{cred: cred, variant: variantID, quantity: quantity}

	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		c.flush(context.Background(), write)
		return
	}

	key := cred.DraftOrderID + "|" + variantID
	c.pending[key] = write

	if timer, ok := c.timers[key]; ok {
		timer.Stop()
	}
	c.timers[key] = time.AfterFunc(c.window, func() {
		c.fire(key)
	})
	c.mu.Unlock()
}

func (c *QuantityCoalescer) fire(key string) {
	c.mu.Lock()
	write, ok := c.pending[key]
	delete(c.pending, key)
	delete(c.timers, key)
	c.mu.Unlock()

	if ok {
		c.flush(context.Background(), write)
	}
}
