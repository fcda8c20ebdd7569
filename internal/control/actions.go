// Package control decouples user-facing surfaces from the agent client.
// A menu, window, or hotkey binding calls an Actions implementation; the
// Dispatcher implementation runs each blocking call on its own worker and
// delivers the outcome on a channel, so no toolkit callback ever blocks
// on the network.
package control

// Actions is the set of user-initiated operations a control surface can
// trigger. Implementations must return promptly; any blocking work happens
// off the caller's control path.
type Actions interface {
	StartAgent(autonomyLevel string)
	StopAgent()
	PollNow()
	OpenSettings()
	Quit()
}
