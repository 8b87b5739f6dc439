package manager

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/d1nch8g/sfx/cache"
	"github.com/d1nch8g/sfx/config"
	"github.com/d1nch8g/sfx/device"
)

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide manager, constructing and
// initializing it on first use from the environment configuration, the
// portaudio driver, and the default sound table. Initialization is
// best-effort; the returned manager is usable even if some sounds or the
// device failed to come up.
func Default() *Manager {
	defaultOnce.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Error("failed to load audio config, using defaults", "error", err)
			cfg = &config.Config{
				SoundsDir:        "sounds",
				BlockSize:        2048,
				PreferLowLatency: true,
				WarmupFrames:     100,
				WarmupSampleRate: 22050,
			}
		}

		defaultManager = New(*cfg, device.NewPortaudioDriver())
		if err := defaultManager.Initialize(config.DefaultSounds()); err != nil {
			log.Error("audio system initialization failed", "error", err)
		}
	})
	return defaultManager
}

// Play plays a sound through the default manager.
func Play(key string) bool {
	return Default().Play(key)
}

// GetAudioData returns audio data from the default manager.
func GetAudioData(key string) (*cache.SoundBuffer, bool) {
	return Default().GetAudioData(key)
}
