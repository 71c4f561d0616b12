package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is how long the persister waits for mutations to
// settle before writing.
const DefaultDebounce = 500 * time.Millisecond

// Persister coalesces session mutations into debounced, fire-and-forget
// store writes. A failed write is logged and never rolls back in-memory
// state.
type Persister struct {
	store    Store
	session  *Session
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
	wg    sync.WaitGroup
}

// NewPersister wires a session to a store. debounce <= 0 uses
// DefaultDebounce. The session's persist hook is installed here.
func NewPersister(store Store, sess *Session, debounce time.Duration) *Persister {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	p := &Persister{store: store, session: sess, debounce: debounce}
	sess.SetPersistHook(p.Schedule)
	return p
}

// Schedule arms (or re-arms) the debounce timer. The snapshot is taken
// when the timer fires, so the write always reflects the latest state.
func (p *Persister) Schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.fire)
}

func (p *Persister) fire() {
	// Register under mu so Flush's Wait is ordered against this Add.
	p.mu.Lock()
	p.wg.Add(1)
	p.mu.Unlock()

	snap := p.session.Snapshot()
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.store.Save(ctx, snap); err != nil {
			slog.Error("session persistence failed",
				"error", err,
				"section", snap.CurrentSection,
				"content_length", len(snap.Editable))
		}
	}()
}

// Flush cancels any pending timer, writes the current state
// synchronously, and waits for in-flight writes. Used at shutdown.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.wg.Wait()
	p.mu.Unlock()

	return p.store.Save(ctx, p.session.Snapshot())
}
