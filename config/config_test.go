package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sounds", cfg.SoundsDir)
	assert.Equal(t, 2048, cfg.BlockSize)
	assert.True(t, cfg.PreferLowLatency)
	assert.Equal(t, 100, cfg.WarmupFrames)
	assert.Equal(t, 22050, cfg.WarmupSampleRate)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SFX_SOUNDS_DIR", "/opt/app/sounds")
	t.Setenv("SFX_BLOCK_SIZE", "1024")
	t.Setenv("SFX_PREFER_LOW_LATENCY", "false")
	t.Setenv("SFX_WARMUP_FRAMES", "256")
	t.Setenv("SFX_WARMUP_SAMPLE_RATE", "44100")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/opt/app/sounds", cfg.SoundsDir)
	assert.Equal(t, 1024, cfg.BlockSize)
	assert.False(t, cfg.PreferLowLatency)
	assert.Equal(t, 256, cfg.WarmupFrames)
	assert.Equal(t, 44100, cfg.WarmupSampleRate)
}

func TestDefaultSounds(t *testing.T) {
	table := DefaultSounds()

	require.Len(t, table, 7)
	for _, key := range []string{
		"AP_Engage", "AP_Disengage", "NoA_Engage",
		"rec_start_voice", "rec_stop_voice",
		"chime_single", "chime_hi_lo",
	} {
		assert.Contains(t, table, key)
		assert.Equal(t, key+".mp3", table[key])
	}
}
