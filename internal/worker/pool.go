package worker

import (
	"context"
	"errors"
	"sync"
)

type Task func(ctx context.Context) error

var (
	ErrPoolClosed = errors.New("worker pool closed")
	ErrQueueFull  = errors.New("worker queue full")
)

// Pool runs submitted tasks on a fixed number of goroutines. Task errors go
// to the error handler; nothing is returned to the submitter.
type Pool struct {
	workers int
	tasks   chan Task
	onError func(error)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(workers, buffer int, onError func(error)) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
		onError: onError,
	}
}

// Start launches the workers. They exit when ctx is done or the pool is
// closed and drained.
func (p *Pool) Start(ctx context.Context) {
	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					if err := t(ctx); err != nil {
						p.onError(err)
					}
				}
			}
		}()
	}
}

// TrySubmit queues t without blocking.
func (p *Pool) TrySubmit(t Task) error {
	if t == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Submit waits for queue space or ctx.
func (p *Pool) Submit(ctx context.Context, t Task) error {
	if t == nil {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops intake and waits for queued tasks to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
}
