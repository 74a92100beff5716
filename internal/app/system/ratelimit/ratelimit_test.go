package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(limit int, d time.Duration) (*Limiter, *fakeClock) {
	c := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(limit, d)
	l.now = c.now
	return l, c
}

func TestAllow_WindowResets(t *testing.T) {
	l, c := newTestLimiter(2, time.Minute)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request in window should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other keys have their own window")
	}

	c.t = c.t.Add(time.Minute + time.Second)
	if !l.Allow("a") {
		t.Fatal("request after window expiry should pass")
	}
	if !l.Allow("a") {
		t.Fatal("fresh window should admit up to the limit")
	}
	if l.Allow("a") {
		t.Fatal("fresh window should still enforce the limit")
	}
}

func TestAllow_NonPositiveLimitDisables(t *testing.T) {
	l, _ := newTestLimiter(0, time.Minute)
	for i := 0; i < 10; i++ {
		if !l.Allow("a") {
			t.Fatalf("request %d limited with limit 0", i)
		}
	}
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	l.Allow("a")
	l.Reset("a")
	if !l.Allow("a") {
		t.Error("Allow after Reset should pass")
	}
}

func TestPrune(t *testing.T) {
	l, c := newTestLimiter(1, time.Minute)
	for i := 0; i <= pruneAt; i++ {
		l.Allow(string(rune('a'+i%26)) + time.Duration(i).String())
	}
	c.t = c.t.Add(2 * time.Minute)
	l.Allow("fresh")
	if n := len(l.windows); n != 1 {
		t.Errorf("windows after prune = %d, want 1", n)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remote     string
		trustProxy bool
		want       string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:80", true, "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.3 "}, "1.1.1.1:80", true, "10.0.0.3"},
		{"forwarded ignored without trust", map[string]string{"X-Forwarded-For": "10.0.0.1"}, "1.1.1.1:80", false, "1.1.1.1"},
		{"real ip ignored without trust", map[string]string{"X-Real-IP": "10.0.0.3"}, "1.1.1.1:80", false, "1.1.1.1"},
		{"trusted but no headers", nil, "192.168.1.4:80", true, "192.168.1.4"},
		{"remote addr", nil, "192.168.1.5:5555", false, "192.168.1.5"},
		{"remote without port", nil, "192.168.1.6", false, "192.168.1.6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	rejected := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }
	h := Middleware(l, rejected)(ok)

	codes := []int{}
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	rec := httptest.NewRecorder()
	Middleware(nil, rejected)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("nil limiter code = %d", rec.Code)
	}
}

func TestMiddleware_SpoofedForwardingHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	rejected := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }

	send := func(h http.Handler, xff string) int {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "203.0.113.9:4000"
		r.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	// A client rotating X-Forwarded-For still shares one window.
	l, _ := newTestLimiter(1, time.Minute)
	h := Middleware(l, rejected)(ok)
	if got := send(h, "10.0.0.1"); got != http.StatusNoContent {
		t.Fatalf("first request = %d", got)
	}
	if got := send(h, "10.0.0.2"); got != http.StatusTooManyRequests {
		t.Errorf("rotated header = %d, want 429", got)
	}

	// Behind a trusted proxy each forwarded client has its own window.
	l, _ = newTestLimiter(1, time.Minute)
	l.TrustProxy = true
	h = Middleware(l, rejected)(ok)
	if got := send(h, "10.0.0.1"); got != http.StatusNoContent {
		t.Fatalf("first proxied request = %d", got)
	}
	if got := send(h, "10.0.0.2"); got != http.StatusNoContent {
		t.Errorf("second proxied client = %d, want 204", got)
	}
}
