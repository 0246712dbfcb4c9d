package central

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func batchSpecs(n int) []RequestSpec {
	specs := make([]RequestSpec, n)
	for i := range specs {
		specs[i] = RequestSpec{
			Name:   fmt.Sprintf("item-%d", i),
			Method: http.MethodGet,
			Path:   fmt.Sprintf("/item/%d", i),
		}
	}
	return specs
}

func TestBatch_ResultsAlignWithInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"path":%q}`, r.URL.Path)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	results := c.Batch(context.Background(), batchSpecs(25), BatchOptions{})
	if len(results) != 25 {
		t.Fatalf("results = %d, want 25", len(results))
	}
	for i, r := range results {
		if !r.Ok() {
			t.Fatalf("result %d failed: %s", i, r.Error())
		}
		want := fmt.Sprintf("/item/%d", i)
		if got := r.Get("path").String(); got != want {
			t.Fatalf("result %d path = %q, want %q", i, got, want)
		}
	}
}

func TestBatch_ConcurrencyBounded(t *testing.T) {
	var inFlight, peak atomic.Int32
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		mu.Lock()
		if cur > peak.Load() {
			peak.Store(cur)
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	results := c.Batch(context.Background(), batchSpecs(20), BatchOptions{Concurrency: 3})
	for i, r := range results {
		if !r.Ok() {
			t.Fatalf("result %d failed: %s", i, r.Error())
		}
	}
	if peak.Load() > 3 {
		t.Fatalf("peak in-flight = %d, want <= 3", peak.Load())
	}
}

func TestBatch_StopsOnFirstFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path == "/item/0" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		time.Sleep(10 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	results := c.Batch(context.Background(), batchSpecs(50), BatchOptions{Concurrency: 1})

	if results[0].Ok() {
		t.Fatal("item 0 should have failed")
	}
	// With concurrency 1 the failure cancels everything still queued.
	dispatched := calls.Load()
	if dispatched >= 50 {
		t.Fatalf("all %d requests dispatched despite failure", dispatched)
	}
	var canceled int
	for _, r := range results[1:] {
		if !r.Ok() {
			canceled++
		}
	}
	if canceled == 0 {
		t.Fatal("expected some canceled results after failure")
	}
}

func TestBatch_ContinueOnFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/3") {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"description":"bad item"}`)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	results := c.Batch(context.Background(), batchSpecs(10), BatchOptions{ContinueOnFail: true})

	var ok, failed int
	for _, r := range results {
		if r.Ok() {
			ok++
		} else {
			failed++
		}
	}
	if ok != 9 || failed != 1 {
		t.Fatalf("ok=%d failed=%d, want 9/1", ok, failed)
	}
}

func TestBatch_RetryFailed(t *testing.T) {
	var attempts sync.Map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := attempts.LoadOrStore(r.URL.Path, new(atomic.Int32))
		// Fail item 2 on its first attempt only.
		if r.URL.Path == "/item/2" && n.(*atomic.Int32).Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	c.retries = 1 // isolate the batch-level retry pass from Do's own retries
	results := c.Batch(context.Background(), batchSpecs(5), BatchOptions{
		ContinueOnFail: true,
		RetryFailed:    true,
	})
	for i, r := range results {
		if !r.Ok() {
			t.Fatalf("result %d failed after retry pass: %s", i, r.Error())
		}
	}
}

func TestBatch_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	c := testClient(t, srv)
	if results := c.Batch(context.Background(), nil, BatchOptions{}); len(results) != 0 {
		t.Fatalf("results = %d, want 0", len(results))
	}
}
