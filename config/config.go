package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the sound system.
type Config struct {
	// SoundsDir is the directory preloaded sound files are resolved against.
	SoundsDir string `env:"SFX_SOUNDS_DIR" envDefault:"sounds"`

	// BlockSize is the number of frames per device write. Larger blocks
	// trade latency for dropout resistance under CPU load.
	BlockSize int `env:"SFX_BLOCK_SIZE" envDefault:"2048"`

	// PreferLowLatency selects low-latency stream parameters first,
	// falling back to high-latency parameters if the stream cannot open.
	PreferLowLatency bool `env:"SFX_PREFER_LOW_LATENCY" envDefault:"true"`

	// WarmupFrames is the length of the silent warm-up buffer.
	WarmupFrames int `env:"SFX_WARMUP_FRAMES" envDefault:"100"`

	// WarmupSampleRate is the sample rate of the warm-up buffer. It is
	// independent of the rates of the preloaded clips; the warm-up only
	// needs to force stream allocation, not match any clip.
	WarmupSampleRate int `env:"SFX_WARMUP_SAMPLE_RATE" envDefault:"22050"`
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultSounds returns the default mapping from sound key to filename,
// resolved relative to SoundsDir at preload time.
func DefaultSounds() map[string]string {
	return map[string]string{
		"AP_Engage":       "AP_Engage.mp3",
		"AP_Disengage":    "AP_Disengage.mp3",
		"NoA_Engage":      "NoA_Engage.mp3",
		"rec_start_voice": "rec_start_voice.mp3",
		"rec_stop_voice":  "rec_stop_voice.mp3",
		"chime_single":    "chime_single.mp3",
		"chime_hi_lo":     "chime_hi_lo.mp3",
	}
}
