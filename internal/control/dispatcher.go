package control

import (
	"fmt"
	"log"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/sidekick-io/sidekick/internal/agent"
	"github.com/sidekick-io/sidekick/internal/models"
)

// Kind identifies which action produced a Completion.
type Kind int

// Completion kinds, one per Actions method.
const (
	KindStart Kind = iota
	KindStop
	KindPoll
	KindOpenSettings
	KindQuit
)

// String returns the user-facing name of the action.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start agent"
	case KindStop:
		return "stop agent"
	case KindPoll:
		return "poll now"
	case KindOpenSettings:
		return "open settings"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Completion is the delivered outcome of one dispatched action.
type Completion struct {
	Kind   Kind
	Status *models.Status // set for start/stop
	Result map[string]any // set for poll
	Err    error
}

// Dispatcher implements Actions on top of an agent.Client. Every action
// runs on its own goroutine and its Completion is delivered on Events;
// the channel is the only hand-off point, so whatever loop drains it can
// safely touch UI state.
type Dispatcher struct {
	client *agent.Client
	notify bool
	events chan Completion
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. With notifyOnFailure set, failed
// start/stop/poll actions additionally raise a desktop notification so
// the user is never left believing an action silently succeeded.
func NewDispatcher(client *agent.Client, notifyOnFailure bool) *Dispatcher {
	return &Dispatcher{
		client: client,
		notify: notifyOnFailure,
		events: make(chan Completion, 16),
	}
}

// Events returns the completion channel. One Completion is delivered per
// dispatched action, in completion order.
func (d *Dispatcher) Events() <-chan Completion {
	return d.events
}

// StartAgent starts the agent with the given autonomy level (empty means
// the daemon's default).
func (d *Dispatcher) StartAgent(autonomyLevel string) {
	d.dispatch(func() Completion {
		status, err := d.client.Start(autonomyLevel)
		return Completion{Kind: KindStart, Status: status, Err: err}
	})
}

// StopAgent stops the agent.
func (d *Dispatcher) StopAgent() {
	d.dispatch(func() Completion {
		status, err := d.client.Stop()
		return Completion{Kind: KindStop, Status: status, Err: err}
	})
}

// PollNow triggers an immediate poll cycle.
func (d *Dispatcher) PollNow() {
	d.dispatch(func() Completion {
		result, err := d.client.PollNow()
		return Completion{Kind: KindPoll, Result: result, Err: err}
	})
}

// OpenSettings reports the request on Events; the bound surface decides
// how to present settings.
func (d *Dispatcher) OpenSettings() {
	d.dispatch(func() Completion {
		return Completion{Kind: KindOpenSettings}
	})
}

// Quit reports the request on Events.
func (d *Dispatcher) Quit() {
	d.dispatch(func() Completion {
		return Completion{Kind: KindQuit}
	})
}

// Wait blocks until every dispatched action has delivered its Completion.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(fn func() Completion) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		completion := fn()
		if completion.Err != nil && d.notify {
			message := fmt.Sprintf("Could not %s: %v", completion.Kind, completion.Err)
			if err := beeep.Notify("Sidekick", message, ""); err != nil {
				log.Printf("Failed to show notification: %v", err)
			}
		}
		d.events <- completion
	}()
}
