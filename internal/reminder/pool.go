package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs submitted tasks on a fixed number of goroutines, optionally
// spacing task starts to at most rps per second across all workers.
type WorkerPool struct {
	workers int
	tasks   chan Task
	clock   clockwork.Clock
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  clockwork.Ticker
}

func NewWorkerPool(workers, buffer int, clock clockwork.Clock) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
		clock:   clock,
	}
}

func (p *WorkerPool) SetRateLimit(rps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTickerLocked()
	if rps <= 0 {
		return
	}
	p.ticker = p.clock.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.Chan()
}

func (p *WorkerPool) stopTickerLocked() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

// Submit queues t, blocking while the buffer is full.
func (p *WorkerPool) Submit(t Task) {
	if t == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks; workers drain what is queued and exit.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	p.stopTickerLocked()
	p.mu.Unlock()
	close(p.tasks)
}

func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.work(ctx, out)
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

func (p *WorkerPool) work(ctx context.Context, out chan<- Result) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-p.tasks:
			if !ok {
				return
			}
			p.mu.RLock()
			rate := p.rate
			p.mu.RUnlock()
			if rate != nil {
				select {
				case <-ctx.Done():
					return
				case <-rate:
				}
			}
			err := t(ctx)
			select {
			case <-ctx.Done():
				return
			case out <- Result{Err: err}:
			}
		}
	}
}
