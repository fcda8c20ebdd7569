package control

import "errors"

// ErrHotkeysUnsupported is returned by Register when no platform hotkey
// binding is available.
var ErrHotkeysUnsupported = errors.New("global hotkeys not supported on this platform")

// Hotkeys registers global keyboard shortcuts with the platform. Real
// implementations are platform-specific and live outside this module;
// UnsupportedHotkeys is the default.
type Hotkeys interface {
	Register(combo string, fn func()) error
	Unregister()
}

// UnsupportedHotkeys is the stub used when no platform binding exists.
// Callers treat hotkeys as absent rather than failing.
type UnsupportedHotkeys struct{}

// Register always reports ErrHotkeysUnsupported.
func (UnsupportedHotkeys) Register(string, func()) error { return ErrHotkeysUnsupported }

// Unregister is a no-op.
func (UnsupportedHotkeys) Unregister() {}
