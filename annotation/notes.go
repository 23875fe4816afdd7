package annotation

import "encoding/json"

type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (iv Interval) Duration() float64 { return iv.End - iv.Start }

// NoteData is a list of note segments with their pitch in Hz. Overlap between
// consecutive notes is not checked.
type NoteData struct {
	intervals  []Interval
	pitches    []float64
	energies   []float64
	confidence []float64
}

func NewNoteData(intervals []Interval, pitches, energies, confidence []float64) (*NoteData, error) {
	cols := []column{
		{"intervals", len(intervals)},
		{"pitches", len(pitches)},
		{"energies", len(energies)},
	}
	if confidence != nil {
		cols = append(cols, column{"confidence", len(confidence)})
	}
	if err := validateLengths(cols...); err != nil {
		return nil, err
	}
	if err := validateIntervals(intervals); err != nil {
		return nil, err
	}
	if err := validateConfidence(confidence); err != nil {
		return nil, err
	}

	var ivs []Interval
	if intervals != nil {
		ivs = append(make([]Interval, 0, len(intervals)), intervals...)
	}
	return &NoteData{
		intervals:  ivs,
		pitches:    clone(pitches),
		energies:   clone(energies),
		confidence: clone(confidence),
	}, nil
}

func (n *NoteData) Len() int { return len(n.intervals) }

func (n *NoteData) Intervals() []Interval {
	if n.intervals == nil {
		return nil
	}
	return append(make([]Interval, 0, len(n.intervals)), n.intervals...)
}

// Pitches are note fundamentals in Hz.
func (n *NoteData) Pitches() []float64    { return clone(n.pitches) }
func (n *NoteData) Energies() []float64   { return clone(n.energies) }
func (n *NoteData) Confidence() []float64 { return clone(n.confidence) }

func (n *NoteData) MarshalJSON() ([]byte, error) {
	ivs := n.intervals
	if ivs == nil {
		ivs = []Interval{}
	}
	return json.Marshal(struct {
		Intervals  []Interval `json:"intervals"`
		Pitches    []float64  `json:"pitches_hz"`
		Energies   []float64  `json:"energies"`
		Confidence []float64  `json:"confidence"`
	}{ivs, orEmpty(n.pitches), orEmpty(n.energies), n.confidence})
}
