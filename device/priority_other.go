//go:build !windows

package device

// ElevatePlaybackPriority is a no-op on platforms without a usable
// thread-priority API.
func ElevatePlaybackPriority() {}
