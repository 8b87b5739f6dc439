package device

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const outputChannels = 2

// PortaudioDriver plays audio through portaudio's default output device.
// Each Play opens its own output stream; overlapping streams are mixed
// by portaudio and the OS.
type PortaudioDriver struct {
	mu          sync.Mutex
	opts        Options
	initialized bool
	nextID      int
	active      map[int]context.CancelFunc
}

func NewPortaudioDriver() *PortaudioDriver {
	return &PortaudioDriver{
		active: make(map[int]context.CancelFunc),
	}
}

func (d *PortaudioDriver) Configure(opts Options) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if opts.BlockSize <= 0 {
		return errors.New("block size must be positive")
	}

	if !d.initialized {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize portaudio: %w", err)
		}
		d.initialized = true
	}
	d.opts = opts
	return nil
}

func (d *PortaudioDriver) Play(ctx context.Context, samples []float32, sampleRate int) error {
	d.mu.Lock()
	if !d.initialized {
		d.mu.Unlock()
		return errors.New("driver not configured")
	}
	opts := d.opts
	ctx, cancel := context.WithCancel(ctx)
	id := d.nextID
	d.nextID++
	d.active[id] = cancel
	d.mu.Unlock()

	defer func() {
		cancel()
		d.mu.Lock()
		delete(d.active, id)
		d.mu.Unlock()
	}()

	stream, buffer, err := d.openStream(opts, sampleRate)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}

	blockLen := opts.BlockSize * outputChannels
	for off := 0; off < len(samples); off += blockLen {
		select {
		case <-ctx.Done():
			stream.Abort()
			return ctx.Err()
		default:
		}

		n := copy(buffer, samples[off:])
		for i := n; i < blockLen; i++ {
			buffer[i] = 0
		}
		if err := stream.Write(); err != nil {
			stream.Abort()
			return fmt.Errorf("failed to write audio: %w", err)
		}
	}

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("failed to drain stream: %w", err)
	}
	return nil
}

// openStream opens a stereo float32 output stream, trying low-latency
// parameters first when configured and falling back to high-latency
// parameters if the open fails.
func (d *PortaudioDriver) openStream(opts Options, sampleRate int) (*portaudio.Stream, []float32, error) {
	out, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, nil, fmt.Errorf("no default output device: %w", err)
	}

	buffer := make([]float32, opts.BlockSize*outputChannels)

	if opts.PreferLowLatency {
		params := portaudio.LowLatencyParameters(nil, out)
		params.Output.Channels = outputChannels
		params.SampleRate = float64(sampleRate)
		params.FramesPerBuffer = opts.BlockSize
		stream, err := portaudio.OpenStream(params, buffer)
		if err == nil {
			return stream, buffer, nil
		}
	}

	params := portaudio.HighLatencyParameters(nil, out)
	params.Output.Channels = outputChannels
	params.SampleRate = float64(sampleRate)
	params.FramesPerBuffer = opts.BlockSize
	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output stream: %w", err)
	}
	return stream, buffer, nil
}

func (d *PortaudioDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for id, cancel := range d.active {
		cancel()
		delete(d.active, id)
	}
}

func (d *PortaudioDriver) Terminate() {
	d.Stop()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.initialized {
		portaudio.Terminate()
		d.initialized = false
	}
}
