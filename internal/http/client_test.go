package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q, want %q", got, "test-agent")
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want %q", got, "application/json")
		}
		w.Write([]byte(`{"name":"bippi"}`))
	}))
	defer srv.Close()

	client := NewClient("test-agent", time.Second)
	var out struct {
		Name string `json:"name"`
	}
	if err := client.GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Name != "bippi" {
		t.Errorf("Name = %q, want %q", out.Name, "bippi")
	}
}

func TestClient_RetriesTemporaryFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient("test", time.Second, WithRetries(2, time.Millisecond))
	body, err := client.Get(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestClient_DoesNotRetryNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("test", time.Second, WithRetries(3, time.Millisecond))
	_, err := client.Get(context.Background(), srv.URL, "")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Get() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestRateLimiter_Reserve(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Second)
	rl.now = func() time.Time { return now }

	if wait := rl.reserve(); wait != 0 {
		t.Fatalf("first reserve() = %v, want 0", wait)
	}
	if wait := rl.reserve(); wait != time.Second {
		t.Errorf("second reserve() = %v, want %v", wait, time.Second)
	}

	now = now.Add(1500 * time.Millisecond)
	if wait := rl.reserve(); wait != 0 {
		t.Errorf("reserve() after window = %v, want 0", wait)
	}
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}
