package model

import "github.com/jsphweid/tonas/annotation"

type TrackSummary struct {
	TrackID  string         `json:"track_id"`
	Metadata *TrackMetadata `json:"metadata"`
}

type TrackDetail struct {
	TrackSummary
	HasMelody       bool     `json:"has_melody"`
	HasNotes        bool     `json:"has_notes"`
	NumNotes        int      `json:"num_notes"`
	NumFrames       int      `json:"num_frames"`
	TuningFrequency *float64 `json:"tuning_frequency"`
}

type NotesResponse struct {
	TrackID         string               `json:"track_id"`
	TuningFrequency float64              `json:"tuning_frequency"`
	Notes           *annotation.NoteData `json:"notes"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
