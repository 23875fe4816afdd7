package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/fixture"
	"github.com/jsphweid/tonas/model"
	"github.com/jsphweid/tonas/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func get(t *testing.T, h http.Handler, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	resp := w.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestServeTracks(t *testing.T) {
	h := NewHandler(track.NewDataset(fixture.Dataset(t)))

	resp, body := get(t, h, "/tracks")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var tracks []model.TrackSummary
	require.NoError(t, json.Unmarshal(body, &tracks))
	require.Len(t, tracks, 3)
	assert.Equal(t, "01-D_AMairena", tracks[0].TrackID)
	assert.Equal(t, "Antonio Mairena", tracks[0].Metadata.Singer)
	assert.Nil(t, tracks[2].Metadata)
}

func TestServeKeepsRequestID(t *testing.T) {
	h := NewHandler(track.NewDataset(fixture.Dataset(t)))

	req := httptest.NewRequest(http.MethodGet, "/tracks", nil)
	req.Header.Set("X-Request-Id", "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Result().Header.Get("X-Request-Id"))
}

func TestServeTrackDetail(t *testing.T) {
	h := NewHandler(track.NewDataset(fixture.Dataset(t)))

	resp, body := get(t, h, "/tracks/01-D_AMairena")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail model.TrackDetail
	require.NoError(t, json.Unmarshal(body, &detail))

	assert := assert.New(t)
	assert.True(detail.HasMelody)
	assert.True(detail.HasNotes)
	assert.Equal(3, detail.NumFrames)
	assert.Equal(2, detail.NumNotes)
	require.NotNil(t, detail.TuningFrequency)
	assert.InDelta(440.0, *detail.TuningFrequency, 1e-9)
}

func TestServeNotes(t *testing.T) {
	h := NewHandler(track.NewDataset(fixture.Dataset(t)))

	resp, body := get(t, h, "/tracks/01-D_AMairena/notes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res struct {
		TrackID         string  `json:"track_id"`
		TuningFrequency float64 `json:"tuning_frequency"`
		Notes           struct {
			Intervals []struct {
				Start float64 `json:"start"`
				End   float64 `json:"end"`
			} `json:"intervals"`
			Pitches    []float64 `json:"pitches_hz"`
			Confidence []float64 `json:"confidence"`
		} `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 440.0, res.TuningFrequency)
	require.Len(t, res.Notes.Pitches, 2)
	assert.InDelta(t, 880.0, res.Notes.Pitches[1], 1e-9)
	assert.Equal(t, 1.5, res.Notes.Intervals[1].End)
	assert.Equal(t, []float64{1, 1}, res.Notes.Confidence)
}

func TestServeMissingAnnotations(t *testing.T) {
	h := NewHandler(track.NewDataset(fixture.Dataset(t)))

	resp, body := get(t, h, "/tracks/02-M1_Chocolate/melody")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Contains(t, errResp.Error, "no melody")

	resp, _ = get(t, h, "/tracks/03-M2_Unlisted/notes")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, h, "/tracks/99-X")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeBrokenAnnotation(t *testing.T) {
	root := fixture.Dataset(t)
	fixture.Write(t, root, "Deblas/01-D_AMairena"+constants.F0Suffix, []byte("0 1 x 2\n"))
	h := NewHandler(track.NewDataset(root))

	resp, _ := get(t, h, "/tracks/01-D_AMairena/melody")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServeMissingMetadata(t *testing.T) {
	root := fixture.Dataset(t)
	require.NoError(t, os.Remove(filepath.Join(root, constants.MetadataFile)))
	h := NewHandler(track.NewDataset(root))

	resp, body := get(t, h, "/tracks")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "metadata not found")
}

func TestServeJAMSAndMIDI(t *testing.T) {
	h := NewHandler(track.NewDataset(fixture.Dataset(t)))

	resp, body := get(t, h, "/tracks/01-D_AMairena/jams")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Len(t, doc["annotations"], 2)

	resp, body = get(t, h, "/tracks/01-D_AMairena/midi")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))
	s, err := smf.ReadFrom(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, s.Tracks, 1)
}
