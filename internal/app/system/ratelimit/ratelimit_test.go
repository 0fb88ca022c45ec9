package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllow_BlocksAfterLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("fourth attempt should be blocked")
	}
	if !l.Allow("other") {
		t.Error("different keys have independent windows")
	}
}

func TestReset(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("key") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second attempt should be blocked")
	}

	l.Reset("key")
	if !l.Allow("key") {
		t.Error("attempt after reset should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *httptest.ResponseRecorder) string
		header map[string]string
		remote string
		want   string
	}{
		{name: "x-forwarded-for", header: map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, remote: "9.9.9.9:1234", want: "1.2.3.4"},
		{name: "x-real-ip", header: map[string]string{"X-Real-IP": "4.3.2.1"}, remote: "9.9.9.9:1234", want: "4.3.2.1"},
		{name: "remote addr", remote: "9.9.9.9:1234", want: "9.9.9.9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.header {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tc.want {
				t.Errorf("ClientIP: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter_EmailWindow(t *testing.T) {
	ll := NewLoginLimiter()

	for i := 0; i < 5; i++ {
		r := httptest.NewRequest("POST", "/login", nil)
		r.RemoteAddr = "10.0.0.1:1000"
		if ok, _ := ll.Check(r, "victim@test.com"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	// Sixth attempt on the same account, even from a new IP, is blocked.
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "10.0.0.2:1000"
	if ok, reason := ll.Check(r, "Victim@test.com"); ok {
		t.Error("expected the email window to block the attempt")
	} else if reason == "" {
		t.Error("expected a reason for the block")
	}

	ll.ResetEmail("victim@test.com")
	r = httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "10.0.0.3:1000"
	if ok, _ := ll.Check(r, "victim@test.com"); !ok {
		t.Error("expected attempts to be allowed after reset")
	}
}
