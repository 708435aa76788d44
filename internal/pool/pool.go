// Package pool runs background jobs, such as autosaves, off the driver's path.
package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/FactorySim_Go/internal/logger"
)

// ErrQueueFull is returned by Enqueue when no slot is free
var ErrQueueFull = errors.New("job queue is full")

// ErrStopped is returned by Enqueue after Stop
var ErrStopped = errors.New("pool is stopped")

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Func adapts a function to Job
type Func struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (f Func) Name() string                      { return f.JobName }
func (f Func) Process(ctx context.Context) error { return f.Fn(ctx) }

// Pool is a fixed set of goroutines draining a bounded queue
type Pool struct {
	workers  int
	jobQueue chan Job
	wg       sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobQueue {
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		if err := job.Process(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgJobFailed, "job", job.Name(), "error", err)
			continue
		}
		logger.FromContext(ctx).Debug(LogMsgJobDone, "job", job.Name())
	}
}

// Enqueue adds a job without blocking
func (p *Pool) Enqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrStopped
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new jobs, lets the workers finish the queue and waits for them
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
}
