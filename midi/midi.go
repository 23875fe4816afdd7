package midi

import (
	"fmt"
	"io"
	"sort"

	"github.com/jsphweid/tonas/annotation"
	"github.com/jsphweid/tonas/pitch"
	"github.com/jsphweid/tonas/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	Resolution = 960
	TempoBPM   = 120.0
	channel    = 0
)

type noteEvent struct {
	tick uint32
	off  bool
	key  uint8
	vel  uint8
}

func secondsToTicks(sec float64) uint32 {
	if sec <= 0 {
		return 0
	}
	return uint32(sec*TempoBPM/60*Resolution + 0.5)
}

func velocity(energy, loudest float64) uint8 {
	if loudest <= 0 {
		return 64
	}
	v := energy / loudest * 127
	if v < 1 {
		return 1
	}
	if v > 127 {
		return 127
	}
	return uint8(v + 0.5)
}

// WriteNotes renders notes as a single track SMF. Each note is mapped to the
// nearest key relative to tuning and its velocity follows its energy relative
// to the loudest note. Notes outside the MIDI key range are skipped; the
// number of notes written is returned.
func WriteNotes(w io.Writer, notes *annotation.NoteData, tuning float64, name string) (int, error) {
	intervals := notes.Intervals()
	pitches := notes.Pitches()
	energies := notes.Energies()
	loudest, _ := util.Max(energies)

	var events []noteEvent
	written := 0
	for i, iv := range intervals {
		key, ok := pitch.NearestNote(pitches[i], tuning)
		if !ok {
			continue
		}
		written++
		start, end := secondsToTicks(iv.Start), secondsToTicks(iv.End)
		if end <= start {
			end = start + 1
		}
		events = append(events,
			noteEvent{tick: start, key: uint8(key), vel: velocity(energies[i], loudest)},
			noteEvent{tick: end, off: true, key: uint8(key)},
		)
	}

	// earlier ticks first, and at the same tick note offs before note ons
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(Resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	tr.Add(0, smf.MetaTempo(TempoBPM))
	var last uint32
	for _, ev := range events {
		delta := ev.tick - last
		last = ev.tick
		if ev.off {
			tr.Add(delta, midi.NoteOff(channel, ev.key))
		} else {
			tr.Add(delta, midi.NoteOn(channel, ev.key, ev.vel))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return 0, fmt.Errorf("could not add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return 0, fmt.Errorf("could not write midi: %w", err)
	}
	return written, nil
}
