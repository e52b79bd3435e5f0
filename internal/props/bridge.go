package props

import (
	"context"
	"log"
	"sync"
)

// Source produces property updates until ctx is cancelled or its input ends.
// It must only call emit from the goroutine Run was started on.
type Source interface {
	Run(ctx context.Context, emit func(Update)) error
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, emit func(Update)) error

func (f SourceFunc) Run(ctx context.Context, emit func(Update)) error { return f(ctx, emit) }

// Bridge runs registered sources on their own goroutines and queues their
// updates for the frame loop, which collects them with Drain.
type Bridge struct {
	updates chan Update
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewBridge(buffer int) *Bridge {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bridge{
		updates: make(chan Update, buffer),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register starts src. Registering on a closed bridge is a no-op.
func (b *Bridge) Register(name string, src Source) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := src.Run(b.ctx, b.emit); err != nil && b.ctx.Err() == nil {
			log.Printf("props: source %s stopped: %v", name, err)
		}
	}()
}

func (b *Bridge) emit(u Update) {
	if u.Empty() {
		return
	}
	select {
	case b.updates <- u:
	case <-b.ctx.Done():
	}
}

// Drain returns every queued update merged in arrival order, without blocking.
func (b *Bridge) Drain() (Update, bool) {
	var (
		merged Update
		got    bool
	)
	for {
		select {
		case u := <-b.updates:
			merged = merged.Merge(u)
			got = true
		default:
			return merged, got
		}
	}
}

// Close cancels every source and waits for them to return. Safe to call twice.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
}
