// Package worker provides a worker pool for parallel move enumeration.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/clichess-go/internal/chess"
)

// WorkItem is one source square to enumerate. Board is private to the item;
// producers hand each item its own copy.
type WorkItem struct {
	Board *chess.Board
	From  chess.Square
	Index int // Original index for ordering results
}

// ProcessResult holds the moves found for one work item.
type ProcessResult struct {
	Index int
	From  chess.Square
	Moves []chess.Move
	Error error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool using functional options.
// Default: 1 worker, buffer size of 16 (one rank's worth of pieces per side).
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  16,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run submits items, collects every result and returns them ordered by Index.
// The first result error stops the pool and is returned alongside the
// results gathered so far.
func Run(items []WorkItem, processFunc ProcessFunc, opts ...PoolOption) ([]ProcessResult, error) {
	pool := NewPool(processFunc, opts...)
	pool.Start()

	go func() {
		for _, item := range items {
			pool.Submit(item)
		}
		pool.Close()
	}()

	results := make([]ProcessResult, len(items))
	seen := make([]bool, len(items))
	var firstErr error
	for r := range pool.Results() {
		if r.Error != nil && firstErr == nil {
			firstErr = r.Error
			pool.Stop()
		}
		if r.Index >= 0 && r.Index < len(results) {
			results[r.Index] = r
			seen[r.Index] = true
		}
	}

	ordered := results[:0]
	for i, r := range results {
		if seen[i] {
			ordered = append(ordered, r)
		}
	}
	return ordered, firstErr
}
