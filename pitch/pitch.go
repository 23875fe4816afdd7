package pitch

import (
	"math"

	"gitlab.com/gomidi/midi/v2"
)

const ConcertA = 440.0

// TuningFrequency is the frequency of concert A shifted by deviation cents.
func TuningFrequency(deviation float64) float64 {
	return ConcertA * math.Pow(2, deviation/1200)
}

// MidiToHz converts a (possibly fractional) MIDI pitch into Hz under a tuning
// deviation given in cents. It also returns the tuning frequency the note was
// anchored to.
func MidiToHz(note float64, deviation float64) (float64, float64) {
	tuning := TuningFrequency(deviation)
	return (tuning / 32) * math.Pow(2, (note-9)/12), tuning
}

// HzToMidi is the inverse of MidiToHz for a known tuning frequency.
func HzToMidi(hz float64, tuning float64) float64 {
	return 12*math.Log2(hz*32/tuning) + 9
}

// NearestNote rounds a frequency to the closest MIDI key. ok is false when hz
// is unvoiced or falls outside the 0..127 key range.
func NearestNote(hz float64, tuning float64) (n midi.Note, ok bool) {
	if hz <= 0 || tuning <= 0 {
		return 0, false
	}
	key := math.Round(HzToMidi(hz, tuning))
	if key < 0 || key > 127 {
		return 0, false
	}
	return midi.Note(uint8(key)), true
}
