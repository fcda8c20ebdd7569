package control

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sidekick-io/sidekick/internal/agent"
	"github.com/sidekick-io/sidekick/internal/models"
)

func testDispatcher(t *testing.T, handler http.Handler) (*Dispatcher, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := agent.New(srv.URL, agent.Options{
		MaxRetries: 1,
		Timeout:    2 * time.Second,
		StatePath:  filepath.Join(t.TempDir(), "agent_state.json"),
	})
	d := NewDispatcher(client, false)
	return d, func() {
		client.Close()
		srv.Close()
	}
}

func receive(t *testing.T, d *Dispatcher) Completion {
	t.Helper()
	select {
	case c := <-d.Events():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for completion")
		return Completion{}
	}
}

func TestDispatcherDeliversCompletions(t *testing.T) {
	d, cleanup := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/agent/poll":
			fmt.Fprint(w, `{"polled":true}`)
		default:
			fmt.Fprint(w, `{"is_running":true,"autonomy_level":"auto"}`)
		}
	}))
	defer cleanup()

	d.StartAgent(models.AutonomyAuto)
	c := receive(t, d)
	if c.Kind != KindStart {
		t.Errorf("kind = %v, want start", c.Kind)
	}
	if c.Err != nil {
		t.Errorf("unexpected error: %v", c.Err)
	}
	if c.Status == nil || !c.Status.IsRunning {
		t.Errorf("expected a running status, got %+v", c.Status)
	}

	d.PollNow()
	c = receive(t, d)
	if c.Kind != KindPoll {
		t.Errorf("kind = %v, want poll", c.Kind)
	}
	if c.Result["polled"] != true {
		t.Errorf("unexpected poll result: %v", c.Result)
	}

	d.StopAgent()
	c = receive(t, d)
	if c.Kind != KindStop {
		t.Errorf("kind = %v, want stop", c.Kind)
	}

	d.Wait()
}

func TestDispatcherPropagatesActionErrors(t *testing.T) {
	d, cleanup := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent wedged", http.StatusInternalServerError)
	}))
	defer cleanup()

	d.StartAgent("")
	c := receive(t, d)
	if c.Err == nil {
		t.Error("expected an error completion for a failed start")
	}
	d.Wait()
}

func TestDispatcherUIRequests(t *testing.T) {
	d, cleanup := testDispatcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer cleanup()

	d.OpenSettings()
	if c := receive(t, d); c.Kind != KindOpenSettings || c.Err != nil {
		t.Errorf("unexpected completion: %+v", c)
	}

	d.Quit()
	if c := receive(t, d); c.Kind != KindQuit {
		t.Errorf("kind = %v, want quit", c.Kind)
	}
	d.Wait()
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindStart, "start agent"},
		{KindStop, "stop agent"},
		{KindPoll, "poll now"},
		{KindOpenSettings, "open settings"},
		{KindQuit, "quit"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestUnsupportedHotkeys(t *testing.T) {
	var hk Hotkeys = UnsupportedHotkeys{}
	if err := hk.Register("cmd+shift+a", func() {}); err != ErrHotkeysUnsupported {
		t.Errorf("Register error = %v, want ErrHotkeysUnsupported", err)
	}
	hk.Unregister() // must not panic
}
