// Package device writes decoded audio to the default output device.
package device

import "context"

// Options holds driver configuration. These are preferences passed
// through to the backend, not algorithmic parameters.
type Options struct {
	// BlockSize is the number of frames per device write.
	BlockSize int

	// PreferLowLatency tries low-latency stream parameters first and
	// falls back to high-latency parameters if the stream cannot open.
	PreferLowLatency bool
}

// DefaultOptions returns the default driver options.
func DefaultOptions() Options {
	return Options{
		BlockSize:        2048,
		PreferLowLatency: true,
	}
}

// Driver defines the interface for audio output backends. The default
// output device is process-wide shared state; arbitration between
// concurrent writes is the backend's concern.
type Driver interface {
	// Configure applies driver preferences. Must be called before Play.
	Configure(opts Options) error

	// Play writes interleaved stereo samples to the default output
	// device, blocking until the buffer has been written or ctx is done.
	Play(ctx context.Context, samples []float32, sampleRate int) error

	// Stop halts all in-flight playback. Best-effort: playback that has
	// already completed is unaffected.
	Stop()

	// Terminate releases the audio backend.
	Terminate()
}
