package repository

import (
	"context"
	"errors"
	"log"
	"sync"
)

var ErrPoolClosed = errors.New("kv pool closed")

// KVTask is one unit of key-value store work executed by the pool.
type KVTask func(ctx context.Context) error

type kvJob struct {
	ctx  context.Context
	task KVTask
	done chan error
}

// KVPool caps how many learning-store operations hit Redis at once. The
// learning endpoints fan out several reads per request; the pool keeps
// that fan-out bounded instead of opening unbounded concurrent commands.
type KVPool struct {
	jobs     chan kvJob
	shutdown chan struct{}
	wg       sync.WaitGroup
	workers  int
	once     sync.Once
}

func NewKVPool(workers int) *KVPool {
	if workers <= 0 {
		workers = 2
	}
	return &KVPool{
		jobs:     make(chan kvJob),
		shutdown: make(chan struct{}),
		workers:  workers,
	}
}

func (p *KVPool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	log.Printf("KV pool started with %d workers", p.workers)
}

func (p *KVPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobs:
			job.done <- job.task(job.ctx)
		case <-p.shutdown:
			return
		}
	}
}

// Do runs task on a pool worker and waits for it to finish. The caller's
// context cancels both the wait and the task itself.
func (p *KVPool) Do(ctx context.Context, task KVTask) error {
	job := kvJob{ctx: ctx, task: task, done: make(chan error, 1)}

	select {
	case p.jobs <- job:
	case <-p.shutdown:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-job.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *KVPool) Close() {
	p.once.Do(func() {
		close(p.shutdown)
	})
	p.wg.Wait()
}
