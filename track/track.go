package track

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/jsphweid/tonas/annotation"
	"github.com/jsphweid/tonas/audio"
	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/loader"
	"github.com/jsphweid/tonas/model"
)

// MetadataFunc looks up the metadata record of a track.
type MetadataFunc func(trackID string) (model.TrackMetadata, bool)

// Track is one TONAS recording. Annotations are parsed on first access and
// cached for the life of the Track; a Track is safe for concurrent use.
type Track struct {
	ID        string
	AudioPath string
	F0Path    string
	NotesPath string

	metadata MetadataFunc

	melodyOnce sync.Once
	melody     *annotation.F0Data
	melodyErr  error

	notesOnce sync.Once
	notes     *annotation.NoteData
	tuning    float64
	notesErr  error
}

// New resolves the files of trackID inside dir. metadata may be nil.
func New(trackID string, dir string, metadata MetadataFunc) *Track {
	base := filepath.Join(dir, trackID)
	return &Track{
		ID:        trackID,
		AudioPath: base + constants.AudioSuffix,
		F0Path:    base + constants.F0Suffix,
		NotesPath: base + constants.NotesSuffix,
		metadata:  metadata,
	}
}

func (t *Track) Metadata() (model.TrackMetadata, bool) {
	if t.metadata == nil {
		return model.TrackMetadata{}, false
	}
	return t.metadata(t.ID)
}

func (t *Track) Style() (string, bool) {
	m, ok := t.Metadata()
	return m.Style, ok
}

func (t *Track) Title() (string, bool) {
	m, ok := t.Metadata()
	return m.Title, ok
}

// Singer is the cantaor of the recording.
func (t *Track) Singer() (string, bool) {
	m, ok := t.Metadata()
	return m.Singer, ok
}

// Melody returns the annotated pitch contour, or nil when the track has no
// f0 file.
func (t *Track) Melody() (*annotation.F0Data, error) {
	t.melodyOnce.Do(func() {
		t.melody, t.melodyErr = loader.LoadF0File(t.F0Path)
	})
	if errors.Is(t.melodyErr, loader.ErrMissingFile) {
		return nil, nil
	}
	return t.melody, t.melodyErr
}

// Notes returns the annotated notes, or nil when the track has no notes file.
func (t *Track) Notes() (*annotation.NoteData, error) {
	if err := t.loadNotes(); err != nil {
		if errors.Is(err, loader.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return t.notes, nil
}

// TuningFrequency is the reference frequency of A declared by the notes file.
// Unlike Notes, a missing notes file is reported as loader.ErrMissingFile.
func (t *Track) TuningFrequency() (float64, error) {
	if err := t.loadNotes(); err != nil {
		return 0, err
	}
	return t.tuning, nil
}

func (t *Track) loadNotes() error {
	t.notesOnce.Do(func() {
		t.notes, t.tuning, t.notesErr = loader.LoadNotesFile(t.NotesPath)
	})
	return t.notesErr
}

// Audio decodes the recording as a mono signal at audio.SampleRate. It is not
// cached.
func (t *Track) Audio() (*audio.Signal, error) {
	return audio.Load(t.AudioPath)
}
