package decode

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/youpy/go-wav"
)

// WAVDecoder decodes wav files using go-wav.
type WAVDecoder struct{}

func (WAVDecoder) Decode(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := wav.NewReader(f)
	format, err := r.Format()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", err)
	}
	channels := int(format.NumChannels)
	if channels < 1 {
		return nil, ErrInvalidData
	}
	// go-wav samples carry at most two channel values; indexing past
	// that panics, so multichannel files must be rejected up front.
	if channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	var samples []float32
	for {
		chunk, err := r.ReadSamples()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read wav samples: %w", err)
		}
		for _, s := range chunk {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, float32(r.FloatValue(s, uint(ch))))
			}
		}
	}

	return &PCM{
		Samples:    samples,
		Channels:   channels,
		SampleRate: int(format.SampleRate),
	}, nil
}

func (WAVDecoder) CanDecode(path string) bool {
	return hasExt(path, ".wav", ".wave")
}

func (WAVDecoder) FormatName() string {
	return "wav"
}
