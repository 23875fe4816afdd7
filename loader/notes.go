package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jsphweid/tonas/annotation"
	"github.com/jsphweid/tonas/pitch"
)

const noteColumns = 4

// LoadNotes reads a comma separated note file. The first row holds the tuning
// deviation in cents for the whole file; every following row is
//
//	onset,duration,midi_pitch,energy
//
// It returns the notes together with the tuning frequency derived from the
// deviation, which is file level and shared by all notes.
func LoadNotes(r io.Reader) (*annotation.NoteData, float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, &ParseError{Line: 1, Err: errors.New("missing tuning deviation")}
	}
	if err != nil {
		return nil, 0, &ParseError{Err: err}
	}
	deviation, err := parseFloat(header[0])
	if err != nil {
		return nil, 0, &ParseError{Line: 1, Err: fmt.Errorf("tuning deviation: %w", err)}
	}
	tuning := pitch.TuningFrequency(deviation)

	var intervals []annotation.Interval
	var pitches, energies, confidence []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, &ParseError{Err: err}
		}
		line, _ := reader.FieldPos(0)
		if len(record) != noteColumns {
			return nil, 0, &ParseError{Line: line, Err: fmt.Errorf("expected %d columns, got %d", noteColumns, len(record))}
		}

		var row [noteColumns]float64
		for i, field := range record {
			v, err := parseFloat(field)
			if err != nil {
				return nil, 0, &ParseError{Line: line, Err: err}
			}
			row[i] = v
		}

		hz, _ := pitch.MidiToHz(row[2], deviation)
		intervals = append(intervals, annotation.Interval{Start: row[0], End: row[0] + row[1]})
		pitches = append(pitches, hz)
		energies = append(energies, row[3])
		confidence = append(confidence, 1)
	}

	if confidence == nil {
		confidence = []float64{}
	}
	notes, err := annotation.NewNoteData(intervals, pitches, energies, confidence)
	if err != nil {
		return nil, 0, err
	}
	return notes, tuning, nil
}

// LoadNotesFile is LoadNotes on a path. A missing file yields ErrMissingFile.
func LoadNotesFile(path string) (*annotation.NoteData, float64, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	notes, tuning, err := LoadNotes(f)
	if err != nil {
		return nil, 0, withPath(err, path)
	}
	return notes, tuning, nil
}
