package network

import (
	"errors"
	"testing"
	"time"
)

func TestRotatorRoundRobin(t *testing.T) {
	r, err := NewRotator([]string{"http://a:1", "http://b:2"}, time.Minute)
	if err != nil {
		t.Fatalf("NewRotator() error = %v", err)
	}

	var got []string
	for i := 0; i < 3; i++ {
		p, err := r.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		got = append(got, p.Host)
	}
	want := []string{"a:1", "b:2", "a:1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRotatorBansRefusedProxies(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r, _ := NewRotator([]string{"http://a:1", "http://b:2"}, 10*time.Minute)
	r.now = func() time.Time { return now }

	r.Report("http://a:1", 429)
	r.Report("http://b:2", 200)

	for i := 0; i < 2; i++ {
		p, err := r.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if p.Host != "b:2" {
			t.Fatalf("expected banned proxy to be skipped, got %s", p.Host)
		}
	}

	r.Report("http://b:2", 403)
	if _, err := r.Next(); !errors.Is(err, ErrNoProxies) {
		t.Fatalf("expected ErrNoProxies, got %v", err)
	}

	now = now.Add(11 * time.Minute)
	if _, err := r.Next(); err != nil {
		t.Fatalf("expected bans to expire, got %v", err)
	}
}

func TestNewRotatorRejectsRelativeProxy(t *testing.T) {
	if _, err := NewRotator([]string{"not-a-proxy"}, time.Minute); err == nil {
		t.Fatal("expected error for proxy without scheme")
	}
}
