// Package cache holds decoded sound clips in memory, keyed by symbolic
// name, for the lifetime of the process.
package cache

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/d1nch8g/sfx/decode"
)

// Common cache errors
var (
	ErrNotFound     = errors.New("audio file not found")
	ErrDecodeFailed = errors.New("failed to decode audio file")
)

// SoundBuffer is one fully decoded clip, always stereo. Buffers are
// immutable once stored: Insert replaces entries whole, never mutates
// them in place.
type SoundBuffer struct {
	Samples    []float32 // interleaved stereo, [L R L R ...]
	SampleRate int
}

// Frames returns the number of stereo frames in the buffer.
func (b *SoundBuffer) Frames() int {
	return len(b.Samples) / 2
}

// Cache maps sound keys to decoded buffers. Entries are never evicted.
type Cache struct {
	decoder decode.Decoder
	mu      sync.RWMutex
	sounds  map[string]*SoundBuffer
}

// New creates an empty cache that decodes inserted files with the given
// decoder.
func New(decoder decode.Decoder) *Cache {
	return &Cache{
		decoder: decoder,
		sounds:  make(map[string]*SoundBuffer),
	}
}

// Insert decodes the file at path and stores it under key, overwriting
// any prior entry. It blocks on file I/O and decoding and must stay off
// latency-sensitive playback paths. Decoding happens outside the lock;
// the write lock is held only for the map store.
func (c *Cache) Insert(key, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	pcm, err := c.decoder.Decode(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	buf, err := toStereo(pcm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	c.mu.Lock()
	c.sounds[key] = buf
	c.mu.Unlock()

	log.Debug("sound cached", "key", key, "frames", buf.Frames(), "rate", buf.SampleRate)
	return nil
}

// Get returns the buffer stored under key. The second return value is
// false when the key is absent; that is a lookup miss, not an error.
func (c *Cache) Get(key string) (*SoundBuffer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	buf, ok := c.sounds[key]
	return buf, ok
}

// Keys returns a snapshot of the current keys in unspecified order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.sounds))
	for k := range c.sounds {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of cached sounds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sounds)
}

// toStereo normalizes decoded PCM to interleaved stereo, duplicating the
// single channel of mono input into both output channels.
func toStereo(pcm *decode.PCM) (*SoundBuffer, error) {
	switch pcm.Channels {
	case 2:
		return &SoundBuffer{Samples: pcm.Samples, SampleRate: pcm.SampleRate}, nil
	case 1:
		samples := make([]float32, len(pcm.Samples)*2)
		for i, s := range pcm.Samples {
			samples[i*2] = s
			samples[i*2+1] = s
		}
		return &SoundBuffer{Samples: samples, SampleRate: pcm.SampleRate}, nil
	default:
		return nil, fmt.Errorf("unsupported channel count %d", pcm.Channels)
	}
}
