package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/clichess-go/internal/chess"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(item WorkItem) ProcessResult {
		return ProcessResult{Index: item.Index, From: item.From}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		atomic.AddInt32(counter, 1)
		return ProcessResult{Index: item.Index, From: item.From}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4), WithBufferSize(10))
	pool.Start()

	const numItems = 10
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Board: chess.NewInitialBoard(), Index: i})
	}

	go pool.Close()

	resultCount := collectResults(pool)
	if resultCount != numItems {
		t.Errorf("results = %d; want %d", resultCount, numItems)
	}
	if got := atomic.LoadInt32(&processed); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(item WorkItem) ProcessResult {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return ProcessResult{Index: item.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start()

	const numItems = 50
	for i := 0; i < numItems; i++ {
		pool.Submit(WorkItem{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	if processed := atomic.LoadInt32(&processedCount); processed >= numItems {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}
}

// TestNewPoolOptions tests the functional options constructor.
func TestNewPoolOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 16},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 16},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 16},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), tt.opts...)
			if got := pool.NumWorkers(); got != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}

// TestRunOrdersResults checks results come back by Index regardless of finish order.
func TestRunOrdersResults(t *testing.T) {
	variableDelayFunc := func(item WorkItem) ProcessResult {
		if item.Index%2 == 0 {
			time.Sleep(5 * time.Millisecond)
		}
		return ProcessResult{Index: item.Index, From: item.From}
	}

	var items []WorkItem
	for i, sq := range chess.AllSquares()[:12] {
		items = append(items, WorkItem{From: sq, Index: i})
	}

	results, err := Run(items, variableDelayFunc, WithWorkers(4))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != len(items) {
		t.Fatalf("len(results) = %d; want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Index != i || r.From != items[i].From {
			t.Errorf("results[%d] = {Index %d, From %s}; want {Index %d, From %s}", i, r.Index, r.From, i, items[i].From)
		}
	}
}

func TestRunReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(item WorkItem) ProcessResult {
		if item.Index == 3 {
			return ProcessResult{Index: item.Index, Error: boom}
		}
		return ProcessResult{Index: item.Index}
	}

	items := make([]WorkItem, 8)
	for i := range items {
		items[i].Index = i
	}

	_, err := Run(items, failing, WithWorkers(2))
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v; want %v", err, boom)
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start()

	const numItems = 100
	go func() {
		for i := 0; i < numItems; i++ {
			pool.Submit(WorkItem{Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numItems {
		t.Errorf("processed = %d; want %d", got, numItems)
	}
}
