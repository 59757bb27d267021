package poller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mwops/mwops/adapters/store/memory"
	"github.com/mwops/mwops/domain/model"
)

func seedPlatforms(t *testing.T, repo *memory.InMemoryPlatformRepository, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		p := &model.PostgresPlatform{
			Name: "pg" + string(rune('a'+i)), ProjectID: 1, ClusterID: 1,
			Instances: 1, StorageSize: "1Gi", Image: "default:15",
		}
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("seeding platform: %v", err)
		}
	}
}

func TestSchedulerPollsEveryPlatformOncePerSweep(t *testing.T) {
	platforms := memory.NewInMemoryPlatformRepository()
	states := memory.NewInMemoryPlatformStateRepository()
	seedPlatforms(t, platforms, 5)

	var mu sync.Mutex
	polled := map[int64]int{}
	s := New(platforms, states, func(_ context.Context, id int64) error {
		mu.Lock()
		polled[id]++
		mu.Unlock()
		return nil
	}, &Options{Interval: time.Hour, Workers: 2, Holder: "test"})

	s.sweep(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if len(polled) != 5 {
		t.Fatalf("polled %d platforms, want 5", len(polled))
	}
	for id, n := range polled {
		if n != 1 {
			t.Errorf("platform %d polled %d times, want 1", id, n)
		}
	}
}

func TestSchedulerSkipsLeasedPlatforms(t *testing.T) {
	platforms := memory.NewInMemoryPlatformRepository()
	states := memory.NewInMemoryPlatformStateRepository()
	seedPlatforms(t, platforms, 3)

	// Another holder owns platform 2.
	if ok, err := states.AcquirePollLease(context.Background(), 2, "other", time.Hour); err != nil || !ok {
		t.Fatalf("pre-acquiring lease: ok=%v err=%v", ok, err)
	}

	var mu sync.Mutex
	polled := map[int64]bool{}
	s := New(platforms, states, func(_ context.Context, id int64) error {
		mu.Lock()
		polled[id] = true
		mu.Unlock()
		return nil
	}, &Options{Interval: time.Hour, Workers: 1, Holder: "test"})

	s.sweep(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if polled[2] {
		t.Error("polled platform 2 despite a foreign lease")
	}
	if !polled[1] || !polled[3] {
		t.Errorf("polled = %v, want platforms 1 and 3", polled)
	}
}

func TestSchedulerReleasesLeases(t *testing.T) {
	platforms := memory.NewInMemoryPlatformRepository()
	states := memory.NewInMemoryPlatformStateRepository()
	seedPlatforms(t, platforms, 1)

	s := New(platforms, states, func(context.Context, int64) error { return nil },
		&Options{Interval: time.Hour, Workers: 1, Holder: "test"})
	s.sweep(context.Background())

	// The lease must be free again for anyone.
	ok, err := states.AcquirePollLease(context.Background(), 1, "other", time.Hour)
	if err != nil {
		t.Fatalf("AcquirePollLease: %v", err)
	}
	if !ok {
		t.Error("lease still held after sweep")
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	platforms := memory.NewInMemoryPlatformRepository()
	states := memory.NewInMemoryPlatformStateRepository()
	seedPlatforms(t, platforms, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := New(platforms, states, func(context.Context, int64) error { return nil },
		&Options{Interval: 10 * time.Millisecond, Workers: 1, Holder: "test"})
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
