package playback

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d1nch8g/sfx/cache"
	"github.com/d1nch8g/sfx/decode"
	"github.com/d1nch8g/sfx/device"
)

// mockDriver records calls for assertions. Play optionally blocks to
// simulate slow device writes.
type mockDriver struct {
	mu         sync.Mutex
	plays      []playCall
	stops      int
	playErr    error
	delay      time.Duration
	played     chan struct{}
	configured device.Options
}

type playCall struct {
	frames     int
	sampleRate int
}

func newMockDriver() *mockDriver {
	return &mockDriver{played: make(chan struct{}, 16)}
}

func (m *mockDriver) Configure(opts device.Options) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configured = opts
	return nil
}

func (m *mockDriver) Play(ctx context.Context, samples []float32, sampleRate int) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	m.plays = append(m.plays, playCall{frames: len(samples) / 2, sampleRate: sampleRate})
	err := m.playErr
	m.mu.Unlock()

	m.played <- struct{}{}
	return err
}

func (m *mockDriver) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
}

func (m *mockDriver) Terminate() {}

func (m *mockDriver) playCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.plays)
}

func (m *mockDriver) setPlayErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *mockDriver) stopCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// stubDecoder feeds the cache fixed stereo PCM.
type stubDecoder struct {
	rate   int
	frames int
}

func (s *stubDecoder) Decode(path string) (*decode.PCM, error) {
	return &decode.PCM{
		Samples:    make([]float32, s.frames*2),
		Channels:   2,
		SampleRate: s.rate,
	}, nil
}

func (s *stubDecoder) CanDecode(path string) bool { return true }
func (s *stubDecoder) FormatName() string         { return "stub" }

func newTestCache(t *testing.T, keys ...string) *cache.Cache {
	t.Helper()
	c := cache.New(&stubDecoder{rate: 44100, frames: 64})
	dir := t.TempDir()
	for _, key := range keys {
		path := filepath.Join(dir, key+".mp3")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		require.NoError(t, c.Insert(key, path))
	}
	return c
}

func waitPlayed(t *testing.T, drv *mockDriver) {
	t.Helper()
	select {
	case <-drv.played:
	case <-time.After(2 * time.Second):
		t.Fatal("device write was never dispatched")
	}
}

func TestPlayUnknownKey(t *testing.T) {
	drv := newMockDriver()
	d := NewDispatcher(newTestCache(t), drv)

	assert.False(t, d.Play("nope"))
	assert.Equal(t, 0, drv.playCount())
}

func TestPlayDispatchesDeviceWrite(t *testing.T) {
	drv := newMockDriver()
	d := NewDispatcher(newTestCache(t, "chime"), drv)

	assert.True(t, d.Play("chime"))
	waitPlayed(t, drv)

	require.Equal(t, 1, drv.playCount())
	assert.Equal(t, 64, drv.plays[0].frames)
	assert.Equal(t, 44100, drv.plays[0].sampleRate)
}

func TestPlayReturnsBeforePlaybackFinishes(t *testing.T) {
	drv := newMockDriver()
	drv.delay = 500 * time.Millisecond
	d := NewDispatcher(newTestCache(t, "chime"), drv)

	start := time.Now()
	ok := d.Play("chime")
	elapsed := time.Since(start)

	assert.True(t, ok)
	assert.Less(t, elapsed, 100*time.Millisecond)
	waitPlayed(t, drv)
}

func TestPlayDeviceErrorNotPropagated(t *testing.T) {
	drv := newMockDriver()
	drv.playErr = errors.New("stream underflow")
	d := NewDispatcher(newTestCache(t, "chime"), drv)

	// The caller only learns whether the key existed.
	assert.True(t, d.Play("chime"))
	waitPlayed(t, drv)
}

// logBuffer is a goroutine-safe writer for capturing log output.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPlayCancelledByStopNotLoggedAsError(t *testing.T) {
	out := &logBuffer{}
	log.SetOutput(out)
	defer log.SetOutput(os.Stderr)

	drv := newMockDriver()
	d := NewDispatcher(newTestCache(t, "chime"), drv)

	// A genuine device failure is reported as an error.
	drv.setPlayErr(errors.New("stream underflow"))
	require.True(t, d.Play("chime"))
	waitPlayed(t, drv)
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "failed to play sound")
	}, 2*time.Second, 10*time.Millisecond)

	// A playback cut off by StopAll is not.
	out2 := &logBuffer{}
	log.SetOutput(out2)
	drv.setPlayErr(context.Canceled)
	require.True(t, d.Play("chime"))
	waitPlayed(t, drv)
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, out2.String(), "failed to play sound")
}

func TestConcurrentPlays(t *testing.T) {
	drv := newMockDriver()
	d := NewDispatcher(newTestCache(t, "a", "b"), drv)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i, key := range []string{"a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.Play(key)
		}()
	}
	wg.Wait()

	assert.True(t, results[0])
	assert.True(t, results[1])
	waitPlayed(t, drv)
	waitPlayed(t, drv)
	assert.Equal(t, 2, drv.playCount())
}

func TestStopAll(t *testing.T) {
	drv := newMockDriver()
	d := NewDispatcher(newTestCache(t, "a"), drv)

	d.StopAll()
	assert.Equal(t, 1, drv.stopCount())
}
