package annotation

import "encoding/json"

// F0Data is a frame-wise pitch contour. Frequencies holds the manually
// corrected track and AutomaticFrequencies the estimate it was corrected
// from; non-positive values mark unvoiced frames.
type F0Data struct {
	times                []float64
	automaticFrequencies []float64
	frequencies          []float64
	energies             []float64
	confidence           []float64
}

// NewF0Data validates and wraps the given columns. A nil confidence means the
// contour carries no confidence and is exempt from the length check.
func NewF0Data(times, automaticFrequencies, frequencies, energies, confidence []float64) (*F0Data, error) {
	cols := []column{
		{"times", len(times)},
		{"automatic frequencies", len(automaticFrequencies)},
		{"frequencies", len(frequencies)},
		{"energies", len(energies)},
	}
	if confidence != nil {
		cols = append(cols, column{"confidence", len(confidence)})
	}
	if err := validateLengths(cols...); err != nil {
		return nil, err
	}
	if err := validateTimes(times); err != nil {
		return nil, err
	}
	if err := validateConfidence(confidence); err != nil {
		return nil, err
	}

	return &F0Data{
		times:                clone(times),
		automaticFrequencies: clone(automaticFrequencies),
		frequencies:          clone(frequencies),
		energies:             clone(energies),
		confidence:           clone(confidence),
	}, nil
}

func (f *F0Data) Len() int { return len(f.times) }

func (f *F0Data) Times() []float64                { return clone(f.times) }
func (f *F0Data) AutomaticFrequencies() []float64 { return clone(f.automaticFrequencies) }
func (f *F0Data) Frequencies() []float64          { return clone(f.frequencies) }
func (f *F0Data) Energies() []float64             { return clone(f.energies) }
func (f *F0Data) Confidence() []float64           { return clone(f.confidence) }

// Voiced reports whether frame i has a positive corrected frequency.
func (f *F0Data) Voiced(i int) bool { return f.frequencies[i] > 0 }

func (f *F0Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Times                []float64 `json:"times"`
		AutomaticFrequencies []float64 `json:"automatic_frequencies"`
		Frequencies          []float64 `json:"frequencies"`
		Energies             []float64 `json:"energies"`
		Confidence           []float64 `json:"confidence"`
	}{
		orEmpty(f.times),
		orEmpty(f.automaticFrequencies),
		orEmpty(f.frequencies),
		orEmpty(f.energies),
		f.confidence,
	})
}

func clone(s []float64) []float64 {
	if s == nil {
		return nil
	}
	return append(make([]float64, 0, len(s)), s...)
}

func orEmpty(s []float64) []float64 {
	if s == nil {
		return []float64{}
	}
	return s
}
