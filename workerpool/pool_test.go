package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteRunsAllTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	var count int64
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		if err := p.Execute(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		}); err != nil {
			t.Fatalf("Execute error: %v", err)
		}
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tasks")
	}
	if atomic.LoadInt64(&count) != 20 {
		t.Fatalf("count = %d, want 20", count)
	}
}

func TestExecuteRejectsWhenQueueFull(t *testing.T) {
	b := NewBuilder().PoolSize(1).TaskCount(1)
	p := b.Create()
	defer p.Close()

	block := make(chan struct{})
	if err := p.Execute(func() { <-block }); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if err := p.Execute(func() {}); err != nil {
		t.Fatalf("second Execute (queued): %v", err)
	}
	if err := p.Execute(func() {}); err == nil {
		t.Fatal("expected third Execute to be rejected")
	}
	close(block)
}

func TestPoolRespawnsAfterPanic(t *testing.T) {
	p := New(1)
	defer p.Close()

	if err := p.Execute(func() { panic("boom") }); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var ran int64
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt64(&ran) == 0 {
		select {
		case <-deadline:
			t.Fatal("pool never recovered a worker to run the follow-up task")
		default:
		}
		if err := p.Execute(func() { atomic.AddInt64(&ran, 1) }); err != nil {
			continue
		}
		time.Sleep(10 * time.Millisecond)
	}
}
