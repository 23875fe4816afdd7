// Package audio decodes TONAS recordings into mono signals at a fixed rate.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mjibson/go-dsp/wav"
)

const SampleRate = 44100

type Signal struct {
	Samples    []float64
	SampleRate int
}

func (s *Signal) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// Load decodes a WAV file, averages its channels and resamples it to
// SampleRate.
func Load(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open audio %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*Signal, error) {
	w, err := wav.New(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode wav: %w", err)
	}
	if w.NumChannels == 0 || w.SampleRate == 0 {
		return nil, errors.New("wav header has no channels or sample rate")
	}

	samples, err := readAll(w)
	if err != nil {
		return nil, err
	}

	mono := Downmix(samples, int(w.NumChannels))
	return &Signal{
		Samples:    Resample(mono, int(w.SampleRate), SampleRate),
		SampleRate: SampleRate,
	}, nil
}

// readAll reads every sample of the data chunk scaled into [-1, 1].
// wav.Samples rounds the count down to a multiple of 8, so the tail is read
// one sample at a time until the chunk runs out.
func readAll(w *wav.Wav) ([]float64, error) {
	var res []float64
	if w.Samples > 0 {
		data, err := w.ReadSamples(w.Samples)
		if err != nil {
			return nil, fmt.Errorf("could not read wav samples: %w", err)
		}
		if res, err = toFloats(data, res); err != nil {
			return nil, err
		}
	}
	for {
		data, err := w.ReadSamples(1)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return res, nil
		}
		if err != nil {
			return nil, fmt.Errorf("could not read wav samples: %w", err)
		}
		if res, err = toFloats(data, res); err != nil {
			return nil, err
		}
	}
}

func toFloats(data any, dst []float64) ([]float64, error) {
	switch d := data.(type) {
	case []uint8:
		for _, v := range d {
			dst = append(dst, (float64(v)-128)/128)
		}
	case []int16:
		for _, v := range d {
			dst = append(dst, float64(v)/32768)
		}
	case []float32:
		for _, v := range d {
			dst = append(dst, float64(v))
		}
	default:
		return nil, fmt.Errorf("unsupported wav sample type %T", data)
	}
	return dst, nil
}

// Downmix averages interleaved channels into one. A trailing partial frame is
// dropped.
func Downmix(interleaved []float64, channels int) []float64 {
	if channels < 1 {
		channels = 1
	}
	frames := len(interleaved) / channels
	res := make([]float64, frames)
	for i := range res {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		res[i] = sum / float64(channels)
	}
	return res
}

// Resample converts between rates with linear interpolation.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 {
		return samples
	}

	ratio := float64(fromRate) / float64(toRate)
	newLength := int(float64(len(samples)) / ratio)
	res := make([]float64, newLength)

	for i := range res {
		pos := float64(i) * ratio
		index := int(pos)
		frac := pos - float64(index)

		switch {
		case index+1 < len(samples):
			res[i] = samples[index]*(1-frac) + samples[index+1]*frac
		case index < len(samples):
			res[i] = samples[index]
		default:
			res[i] = samples[len(samples)-1]
		}
	}
	return res
}
