package agent

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

func TestBackoffSchedule(t *testing.T) {
	c := New("http://localhost:0", Options{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		StatePath:  t.TempDir() + "/state.json",
	})
	defer c.Close()

	b := c.newBackOff()
	b.Reset()

	// Three attempts mean two waits: base_delay * 2^i for i = 0, 1.
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	for i, w := range want {
		got := b.NextBackOff()
		if got != w {
			t.Errorf("delay %d = %v, want %v", i, got, w)
		}
	}

	if got := b.NextBackOff(); got != backoff.Stop {
		t.Errorf("expected Stop after %d delays, got %v", len(want), got)
	}
}

func TestBackoffSingleAttempt(t *testing.T) {
	c := New("http://localhost:0", Options{
		MaxRetries: 1,
		BaseDelay:  100 * time.Millisecond,
		StatePath:  t.TempDir() + "/state.json",
	})
	defer c.Close()

	b := c.newBackOff()
	b.Reset()
	if got := b.NextBackOff(); got != backoff.Stop {
		t.Errorf("max_retries=1 must not wait at all, got %v", got)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{StatusCode: 503, Body: "agent offline"}
	want := "daemon returned 503: agent offline"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
