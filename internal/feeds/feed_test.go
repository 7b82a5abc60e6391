package feeds

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestFeed_RefreshAppliesResult(t *testing.T) {
	feed := New(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}, nil)

	feed.Refresh(context.Background())

	items, loading := feed.Snapshot()
	if loading {
		t.Error("Expected loading cleared after refresh")
	}
	if len(items) != 2 || items[0] != "a" {
		t.Errorf("Expected fetched items, got %v", items)
	}
}

func TestFeed_FailedRefreshKeepsPreviousData(t *testing.T) {
	var fail bool
	var noticed error
	feed := New(func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, errors.New("fetch failed")
		}
		return []string{"good"}, nil
	}, func(err error) {
		noticed = err
	})

	feed.Refresh(context.Background())
	fail = true
	feed.Refresh(context.Background())

	items, loading := feed.Snapshot()
	if loading {
		t.Error("Expected loading cleared after failed refresh")
	}
	if len(items) != 1 || items[0] != "good" {
		t.Errorf("Expected previous data kept, got %v", items)
	}
	if noticed == nil {
		t.Error("Expected the failure delivered to the notice callback")
	}
}

func TestFeed_StaleCompletionDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	calls := 0

	feed := New(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			close(firstStarted)
			<-release
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		feed.Refresh(context.Background())
	}()

	<-firstStarted
	// The second refresh supersedes the first before it completes.
	feed.Refresh(context.Background())
	close(release)
	wg.Wait()

	items, loading := feed.Snapshot()
	if loading {
		t.Error("Expected loading cleared")
	}
	if len(items) != 1 || items[0] != "fresh" {
		t.Errorf("Expected the stale completion discarded, got %v", items)
	}
}

func TestFeed_LoadingFlag(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	feed := New(func(ctx context.Context) ([]int, error) {
		close(started)
		<-release
		return []int{1}, nil
	}, nil)

	done := make(chan struct{})
	go func() {
		feed.Refresh(context.Background())
		close(done)
	}()

	<-started
	if !feed.Loading() {
		t.Error("Expected loading true while the fetch is in flight")
	}
	close(release)
	<-done
	if feed.Loading() {
		t.Error("Expected loading false after the fetch settled")
	}
}

func TestFeed_Prepend(t *testing.T) {
	feed := New(func(ctx context.Context) ([]string, error) {
		return []string{"old"}, nil
	}, nil)
	feed.Refresh(context.Background())

	feed.Prepend("new")

	items, _ := feed.Snapshot()
	if len(items) != 2 || items[0] != "new" {
		t.Errorf("Expected the pushed item first, got %v", items)
	}
}

func TestFeed_Replace(t *testing.T) {
	feed := New(func(ctx context.Context) ([]string, error) {
		return []string{"a", "b", "c"}, nil
	}, nil)
	feed.Refresh(context.Background())

	if !feed.Replace(func(s string) bool { return s == "b" }, "B") {
		t.Fatal("Expected a match")
	}
	if feed.Replace(func(s string) bool { return s == "missing" }, "x") {
		t.Error("Expected no match for an absent item")
	}

	items, _ := feed.Snapshot()
	if items[1] != "B" {
		t.Errorf("Expected item replaced in place, got %v", items)
	}
}

func TestFeed_CloseDiscardsMutations(t *testing.T) {
	feed := New(func(ctx context.Context) ([]string, error) {
		return []string{"data"}, nil
	}, nil)
	feed.Refresh(context.Background())
	feed.Close()

	feed.Prepend("late")
	feed.Refresh(context.Background())

	items, loading := feed.Snapshot()
	if loading {
		t.Error("Expected a closed feed never loading")
	}
	if len(items) != 1 || items[0] != "data" {
		t.Errorf("Expected mutations after close discarded, got %v", items)
	}
}
