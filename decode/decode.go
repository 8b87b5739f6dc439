// Package decode turns audio files into float32 PCM suitable for the
// sound cache and the output device.
package decode

import (
	"errors"
	"path/filepath"
	"strings"
)

// Common decoder errors
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidData       = errors.New("invalid audio data")
)

// PCM represents decoded audio.
type PCM struct {
	Samples    []float32 // interleaved samples in [-1, 1]
	Channels   int       // 1 = mono, 2 = stereo
	SampleRate int       // frames per second
}

// Frames returns the number of frames in the decoded audio.
func (p *PCM) Frames() int {
	if p.Channels == 0 {
		return 0
	}
	return len(p.Samples) / p.Channels
}

// Decoder defines the interface for audio format decoding.
type Decoder interface {
	// Decode reads the file at path and returns decoded PCM data.
	Decode(path string) (*PCM, error)

	// CanDecode checks if this decoder can handle the given filename.
	CanDecode(path string) bool

	// FormatName returns the name of the format this decoder handles.
	FormatName() string
}

var decoders = []Decoder{
	&MP3Decoder{},
	&WAVDecoder{},
}

// ForFile returns a decoder able to handle the given filename, selected
// by extension.
func ForFile(path string) (Decoder, error) {
	for _, d := range decoders {
		if d.CanDecode(path) {
			return d, nil
		}
	}
	return nil, ErrUnsupportedFormat
}

// Auto is a Decoder that dispatches to the format decoder matching the
// file extension.
type Auto struct{}

func (Auto) Decode(path string) (*PCM, error) {
	d, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	return d.Decode(path)
}

func (Auto) CanDecode(path string) bool {
	_, err := ForFile(path)
	return err == nil
}

func (Auto) FormatName() string {
	return "auto"
}

func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
