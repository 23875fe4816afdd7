// Package jams converts TONAS tracks into JAMS documents.
package jams

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/jsphweid/tonas/annotation"
	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/model"
	"github.com/jsphweid/tonas/track"
)

const Version = "0.3.4"

const (
	NamespacePitchContour = "pitch_contour"
	NamespaceNoteHz       = "note_hz"
)

type Document struct {
	Annotations  []Annotation   `json:"annotations"`
	FileMetadata FileMetadata   `json:"file_metadata"`
	Sandbox      map[string]any `json:"sandbox"`
}

type FileMetadata struct {
	Title       string            `json:"title"`
	Artist      string            `json:"artist"`
	Release     string            `json:"release"`
	Duration    *float64          `json:"duration"`
	Identifiers map[string]string `json:"identifiers"`
	JamsVersion string            `json:"jams_version"`
}

type Annotation struct {
	Namespace          string             `json:"namespace"`
	AnnotationMetadata AnnotationMetadata `json:"annotation_metadata"`
	Data               []Observation      `json:"data"`
	Sandbox            map[string]any     `json:"sandbox"`
	Time               float64            `json:"time"`
	Duration           *float64           `json:"duration"`
}

type AnnotationMetadata struct {
	Corpus         string `json:"corpus"`
	Version        string `json:"version"`
	DataSource     string `json:"data_source"`
	AnnotationTool string `json:"annotation_tools"`
}

type Observation struct {
	Time       float64  `json:"time"`
	Duration   float64  `json:"duration"`
	Value      any      `json:"value"`
	Confidence *float64 `json:"confidence"`
}

type ContourValue struct {
	Index     int     `json:"index"`
	Frequency float64 `json:"frequency"`
	Voiced    bool    `json:"voiced"`
}

// Input gathers what goes into a document. Nil fields are left out.
type Input struct {
	TrackID         string
	AudioDuration   *float64
	Melody          *annotation.F0Data
	Notes           *annotation.NoteData
	TuningFrequency *float64
	Metadata        *model.TrackMetadata
}

func annotationMetadata() AnnotationMetadata {
	return AnnotationMetadata{
		Corpus:     constants.DatasetName,
		Version:    "1.0",
		DataSource: "manual annotation",
	}
}

func confidenceAt(c []float64, i int) *float64 {
	if c == nil {
		return nil
	}
	v := c[i]
	return &v
}

// PitchContour tags an f0 annotation with the pitch_contour namespace. The
// corrected frequencies are used; unvoiced frames keep their value with
// voiced set to false.
func PitchContour(f0 *annotation.F0Data) Annotation {
	times := f0.Times()
	freqs := f0.Frequencies()
	confidence := f0.Confidence()

	data := make([]Observation, 0, f0.Len())
	for i := range times {
		data = append(data, Observation{
			Time:       times[i],
			Value:      ContourValue{Index: 0, Frequency: freqs[i], Voiced: freqs[i] > 0},
			Confidence: confidenceAt(confidence, i),
		})
	}
	return Annotation{
		Namespace:          NamespacePitchContour,
		AnnotationMetadata: annotationMetadata(),
		Data:               data,
		Sandbox:            map[string]any{},
	}
}

// NoteHz tags a note annotation with the note_hz namespace.
func NoteHz(notes *annotation.NoteData) Annotation {
	intervals := notes.Intervals()
	pitches := notes.Pitches()
	confidence := notes.Confidence()

	data := make([]Observation, 0, notes.Len())
	for i, iv := range intervals {
		data = append(data, Observation{
			Time:       iv.Start,
			Duration:   iv.Duration(),
			Value:      pitches[i],
			Confidence: confidenceAt(confidence, i),
		})
	}
	return Annotation{
		Namespace:          NamespaceNoteHz,
		AnnotationMetadata: annotationMetadata(),
		Data:               data,
		Sandbox:            map[string]any{},
	}
}

func Convert(in Input) *Document {
	doc := &Document{
		Annotations: []Annotation{},
		FileMetadata: FileMetadata{
			Duration:    in.AudioDuration,
			Identifiers: map[string]string{},
			JamsVersion: Version,
		},
		Sandbox: map[string]any{},
	}
	if in.TrackID != "" {
		doc.FileMetadata.Identifiers["track_id"] = in.TrackID
	}
	if in.Melody != nil {
		doc.Annotations = append(doc.Annotations, PitchContour(in.Melody))
	}
	if in.Notes != nil {
		doc.Annotations = append(doc.Annotations, NoteHz(in.Notes))
	}
	if in.Metadata != nil {
		doc.FileMetadata.Title = in.Metadata.Title
		doc.FileMetadata.Artist = in.Metadata.Singer
		doc.Sandbox["style"] = in.Metadata.Style
		doc.Sandbox["title"] = in.Metadata.Title
		doc.Sandbox["singer"] = in.Metadata.Singer
	}
	if in.TuningFrequency != nil {
		doc.Sandbox["tuning_frequency"] = *in.TuningFrequency
	}
	return doc
}

// FromTrack loads everything a track has and converts it. A missing audio
// file leaves the duration empty; broken annotation files are errors.
func FromTrack(t *track.Track) (*Document, error) {
	in := Input{TrackID: t.ID}

	sig, err := t.Audio()
	switch {
	case err == nil:
		d := sig.Duration().Seconds()
		in.AudioDuration = &d
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if in.Melody, err = t.Melody(); err != nil {
		return nil, err
	}
	if in.Notes, err = t.Notes(); err != nil {
		return nil, err
	}
	if in.Notes != nil {
		tuning, err := t.TuningFrequency()
		if err != nil {
			return nil, err
		}
		in.TuningFrequency = &tuning
	}
	if m, ok := t.Metadata(); ok {
		in.Metadata = &m
	}
	return Convert(in), nil
}

func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
