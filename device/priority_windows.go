//go:build windows

package device

import (
	"runtime"
	"syscall"
)

const threadPriorityAboveNormal = 1

var (
	kernel32          = syscall.NewLazyDLL("kernel32.dll")
	getCurrentThread  = kernel32.NewProc("GetCurrentThread")
	setThreadPriority = kernel32.NewProc("SetThreadPriority")
)

// ElevatePlaybackPriority raises the priority of the calling goroutine's
// OS thread so playback stays stable under CPU load. Best-effort: any
// failure is silently ignored. The thread stays locked for the rest of
// the goroutine's life, so on exit the runtime discards it instead of
// returning a priority-boosted thread to the pool.
func ElevatePlaybackPriority() {
	runtime.LockOSThread()
	handle, _, _ := getCurrentThread.Call()
	if handle == 0 {
		return
	}
	setThreadPriority.Call(handle, threadPriorityAboveNormal)
}
