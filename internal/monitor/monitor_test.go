package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/shortlinks/internal/models"
)

func TestHTTPChecker_IsReachable(t *testing.T) {
	var methods sync.Map
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods.Store(r.Method, true)
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	redirect := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, ok.URL+"/landing", http.StatusMovedPermanently)
	}))
	defer redirect.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	checker := NewHTTPChecker(time.Second, zerolog.Nop())
	ctx := context.Background()

	assert.True(t, checker.IsReachable(ctx, ok.URL))
	_, usedHead := methods.Load(http.MethodHead)
	assert.True(t, usedHead, "probe should use HEAD")

	assert.True(t, checker.IsReachable(ctx, failing.URL), "status code is not evaluated")
	assert.True(t, checker.IsReachable(ctx, redirect.URL))
	assert.False(t, checker.IsReachable(ctx, closedURL))
	assert.False(t, checker.IsReachable(ctx, "ftp://example.com"))
	assert.False(t, checker.IsReachable(ctx, "://bad url"))
}

func TestHTTPChecker_Timeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer slow.Close()

	checker := NewHTTPChecker(50*time.Millisecond, zerolog.Nop())

	start := time.Now()
	assert.False(t, checker.IsReachable(context.Background(), slow.URL))
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestHTTPChecker_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewHTTPChecker(time.Second, zerolog.Nop())
	assert.False(t, checker.IsReachable(ctx, srv.URL))
}

type stubLister struct {
	links      []models.Link
	lastFilter *bool
}

func (s *stubLister) List(_ context.Context, isActive *bool) ([]models.Link, error) {
	s.lastFilter = isActive
	return s.links, nil
}

func TestURLMonitor_CheckOnce(t *testing.T) {
	lister := &stubLister{links: []models.Link{
		{ID: 1, FullURL: "http://a.example", ShortURL: "000001", IsActive: true},
		{ID: 2, FullURL: "http://b.example", ShortURL: "000002", IsActive: true},
	}}

	var flipB atomic.Bool
	checker := CheckerFunc(func(_ context.Context, url string) bool {
		if url == "http://b.example" {
			return !flipB.Load()
		}
		return true
	})

	m := NewURLMonitor(lister, checker, time.Minute, zerolog.Nop())

	changes := m.CheckOnce(context.Background())
	assert.Empty(t, changes, "first pass only records state")
	require.NotNil(t, lister.lastFilter)
	assert.True(t, *lister.lastFilter, "only active links are monitored")

	assert.Empty(t, m.CheckOnce(context.Background()))

	flipB.Store(true)
	changes = m.CheckOnce(context.Background())
	require.Len(t, changes, 1)
	assert.Equal(t, "000002", changes[0].Link.ShortURL)
	assert.False(t, changes[0].Reachable)
}

func TestURLMonitor_StartStopsOnCancel(t *testing.T) {
	lister := &stubLister{}
	var passes atomic.Int32
	checker := CheckerFunc(func(context.Context, string) bool { return true })
	lister.links = []models.Link{{ID: 1, FullURL: "http://a.example"}}

	m := NewURLMonitor(lister, CheckerFunc(func(ctx context.Context, url string) bool {
		passes.Add(1)
		return checker(ctx, url)
	}), 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return passes.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
