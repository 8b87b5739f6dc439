// Package playback dispatches fire-and-forget sound playback. Callers
// never block on device I/O and never see device errors; those are
// handled where the device write runs.
package playback

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/d1nch8g/sfx/cache"
	"github.com/d1nch8g/sfx/device"
)

// Dispatcher looks up sounds in the cache and plays them on the output
// device without blocking the caller.
type Dispatcher struct {
	cache  *cache.Cache
	driver device.Driver
}

func NewDispatcher(c *cache.Cache, d device.Driver) *Dispatcher {
	return &Dispatcher{
		cache:  c,
		driver: d,
	}
}

// Play starts asynchronous playback of the sound stored under key. The
// return value reports only whether the key was found and a playback
// attempt dispatched, never whether playback succeeded. Each call spawns
// its own independent playback; concurrent calls may overlap on the
// device.
func (p *Dispatcher) Play(key string) bool {
	buf, ok := p.cache.Get(key)
	if !ok {
		log.Warn("sound key not found", "key", key)
		return false
	}

	go func() {
		device.ElevatePlaybackPriority()
		err := p.driver.Play(context.Background(), buf.Samples, buf.SampleRate)
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled):
			// Cut off by StopAll, not a device failure.
			log.Debug("playback stopped", "key", key)
		default:
			log.Error("failed to play sound", "key", key, "error", err)
		}
	}()
	return true
}

// StopAll halts every currently playing sound. Best-effort.
func (p *Dispatcher) StopAll() {
	p.driver.Stop()
}
