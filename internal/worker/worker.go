package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is a function that represents a background job
type Task func(ctx context.Context) error

type WorkerPool struct {
	taskQueue chan Task
	wg        sync.WaitGroup
	mu        sync.RWMutex // guards closing against concurrent Submit
	closing   bool
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *zap.Logger
}

func NewWorkerPool(size, queueSize int, logger *zap.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		taskQueue: make(chan Task, queueSize),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With(zap.String("component", "worker")),
	}

	for i := 0; i < size; i++ {
		wp.wg.Add(1)
		go wp.startWorker()
	}

	return wp
}

func (wp *WorkerPool) startWorker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		if err := task(wp.ctx); err != nil {
			wp.logger.Warn("worker task failed", zap.Error(err))
		}
	}
}

// Submit queues t and reports whether it was accepted. Tasks are dropped when
// the queue is full or the pool is shutting down.
func (wp *WorkerPool) Submit(t Task) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.closing {
		wp.logger.Warn("task submitted during shutdown, dropping")
		return false
	}
	select {
	case wp.taskQueue <- t:
		return true
	default:
		wp.logger.Warn("task queue full, dropping task")
		return false
	}
}

// Shutdown closes the queue and waits for workers to finish queued tasks.
// Cancelling ctx cancels the context handed to running tasks.
func (wp *WorkerPool) Shutdown(ctx context.Context) {
	wp.mu.Lock()
	if wp.closing {
		wp.mu.Unlock()
		return
	}
	wp.closing = true
	close(wp.taskQueue)
	wp.mu.Unlock()

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		wp.cancel()
		<-done
	}
	wp.cancel()
}
