package decode

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes mp3 files using go-mp3. The decoder always emits
// 16-bit little-endian stereo PCM regardless of the source channel count.
type MP3Decoder struct{}

func (MP3Decoder) Decode(path string) (*PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read mp3 samples: %w", err)
	}
	if len(raw)%2 != 0 {
		return nil, ErrInvalidData
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
		samples[i] = float32(s) / 32768.0
	}

	return &PCM{
		Samples:    samples,
		Channels:   2,
		SampleRate: dec.SampleRate(),
	}, nil
}

func (MP3Decoder) CanDecode(path string) bool {
	return hasExt(path, ".mp3")
}

func (MP3Decoder) FormatName() string {
	return "mp3"
}
