// Package manager orchestrates the sound system: device configuration,
// preloading, warm-up, and the public playback surface.
package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/d1nch8g/sfx/cache"
	"github.com/d1nch8g/sfx/config"
	"github.com/d1nch8g/sfx/decode"
	"github.com/d1nch8g/sfx/device"
	"github.com/d1nch8g/sfx/playback"
)

// Manager owns the sound cache and the output driver and exposes the
// play/add/query/stop operations. Failures surface through logs and
// boolean returns; a missing sound file never takes the process down.
type Manager struct {
	config     config.Config
	cache      *cache.Cache
	driver     device.Driver
	dispatcher *playback.Dispatcher

	initMutex   sync.Mutex
	initialized bool
}

// New creates an uninitialized manager. Call Initialize before playing.
func New(cfg config.Config, drv device.Driver) *Manager {
	c := cache.New(decode.Auto{})
	return &Manager{
		config:     cfg,
		cache:      c,
		driver:     drv,
		dispatcher: playback.NewDispatcher(c, drv),
	}
}

// Initialize configures the driver, preloads the given sound table, and
// warms up the output stream. Idempotent: a second call while already
// initialized is a no-op. Preload and warm-up are best-effort; an entry
// that fails to load is logged and skipped, never fatal.
func (m *Manager) Initialize(table map[string]string) error {
	m.initMutex.Lock()
	defer m.initMutex.Unlock()

	if m.initialized {
		return nil
	}

	opts := device.Options{
		BlockSize:        m.config.BlockSize,
		PreferLowLatency: m.config.PreferLowLatency,
	}
	if err := m.driver.Configure(opts); err != nil {
		return fmt.Errorf("failed to configure audio driver: %w", err)
	}

	m.preload(table)
	m.warmup()

	m.initialized = true
	log.Info("audio system initialized", "sounds", m.cache.Len())
	return nil
}

// preload loads every entry of the sound table into the cache, resolving
// filenames against the configured sounds directory. Entries that fail
// are logged and skipped so one missing file cannot block the rest.
func (m *Manager) preload(table map[string]string) {
	for key, filename := range table {
		path := Resolve(m.config.SoundsDir, filename)
		if err := m.cache.Insert(key, path); err != nil {
			log.Warn("failed to preload sound", "key", key, "path", path, "error", err)
		}
	}
	log.Debug("preload complete", "loaded", m.cache.Len(), "requested", len(table))
}

// warmup plays a short silent buffer in blocking mode to force the
// driver to allocate its stream once at startup, off the playback path.
// The warm-up sample rate is independent of the preloaded clip rates.
func (m *Manager) warmup() {
	frames := m.config.WarmupFrames
	rate := m.config.WarmupSampleRate
	if frames <= 0 || rate <= 0 {
		return
	}

	silence := make([]float32, frames*2)
	if err := m.driver.Play(context.Background(), silence, rate); err != nil {
		log.Warn("audio stream warm-up failed", "error", err)
		return
	}
	log.Debug("audio stream warm-up complete", "frames", frames, "rate", rate)
}

// Play starts asynchronous playback of the sound stored under key and
// returns immediately. The result reports only whether the key existed.
func (m *Manager) Play(key string) bool {
	return m.dispatcher.Play(key)
}

// AddSound decodes the file at path and stores it under key, overwriting
// any prior entry. Returns true on success.
func (m *Manager) AddSound(key, path string) bool {
	if err := m.cache.Insert(key, path); err != nil {
		log.Error("failed to add sound", "key", key, "path", path, "error", err)
		return false
	}
	log.Info("sound added", "key", key)
	return true
}

// GetAudioData returns the decoded buffer stored under key.
func (m *Manager) GetAudioData(key string) (*cache.SoundBuffer, bool) {
	buf, ok := m.cache.Get(key)
	if !ok {
		log.Warn("sound key not found", "key", key)
	}
	return buf, ok
}

// AvailableSounds returns the keys of all cached sounds.
func (m *Manager) AvailableSounds() []string {
	return m.cache.Keys()
}

// StopAll halts every currently playing sound. Best-effort.
func (m *Manager) StopAll() {
	m.dispatcher.StopAll()
}

// Initialized reports whether Initialize has completed.
func (m *Manager) Initialized() bool {
	m.initMutex.Lock()
	defer m.initMutex.Unlock()
	return m.initialized
}

// Resolve joins a sounds directory and a filename. Embedding
// applications with packaged resources can resolve paths themselves and
// pass absolute paths to AddSound instead.
func Resolve(dir, filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(dir, filename)
}
