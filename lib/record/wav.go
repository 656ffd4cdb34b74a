// Package record captures emulator output: audio to wav files and
// video frames to png.
package record

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavWriter streams mono float samples from the mixer into a 16 bit
// PCM wav file.
type WavWriter struct {
	file    *os.File
	encoder *wav.Encoder
}

func NewWavWriter(path string, sampleRate int) (*WavWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %v: %w", path, err)
	}
	return &WavWriter{
		file:    file,
		encoder: wav.NewEncoder(file, sampleRate, 16, 1, 1),
	}, nil
}

// Append converts and writes a batch of samples. The mixer output is
// already in [0, 1] but clamp anyway, a broken channel sweep must not
// wrap into full-scale noise.
func (w *WavWriter) Append(samples []float64) error {
	if len(samples) == 0 {
		return nil
	}

	buffer := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  w.encoder.SampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buffer.Data[i] = int(s * 32767)
	}
	return w.encoder.Write(buffer)
}

// Close finalises the wav header; the file is not valid until then.
func (w *WavWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
