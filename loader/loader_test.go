package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/tonas/annotation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleNotes = "0\n0.0,1.0,69,0.8\n1.0,0.5,81,0.6\n"

const exampleF0 = `0.0 0.5 219.0 220.0
0.5 0.7 221.5 221.0
1.0 0.9 220.0 0.0
1.5 0.2 -1.0 0.0
`

func requireParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
	return perr
}

func TestLoadNotesExample(t *testing.T) {
	notes, tuning, err := LoadNotes(strings.NewReader(exampleNotes))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.InDelta(440.0, tuning, 1e-9)
	require.Equal(t, 2, notes.Len())

	ivs := notes.Intervals()
	pitches := notes.Pitches()
	assert.Equal(annotation.Interval{Start: 0, End: 1}, ivs[0])
	assert.InDelta(440.0, pitches[0], 1e-9)
	assert.InDelta(1.0, ivs[1].Start, 1e-12)
	assert.InDelta(1.5, ivs[1].End, 1e-12)
	assert.InDelta(880.0, pitches[1], 1e-9)
	assert.Equal([]float64{0.8, 0.6}, notes.Energies())
	assert.Equal([]float64{1, 1}, notes.Confidence())
}

func TestLoadNotesRecoversDurations(t *testing.T) {
	content := "-12.5\n0.13,0.271,61.2,0.1\n0.5,1.003,59,0.4\n3.7,0.0001,70.5,0.9\n"
	durations := []float64{0.271, 1.003, 0.0001}

	notes, _, err := LoadNotes(strings.NewReader(content))
	require.NoError(t, err)
	for i, iv := range notes.Intervals() {
		assert.InDelta(t, durations[i], iv.End-iv.Start, 1e-9)
	}
	assert.Len(t, notes.Confidence(), len(durations))
}

func TestLoadNotesTuningDeviation(t *testing.T) {
	notes, tuning, err := LoadNotes(strings.NewReader("100\n0,1,69,0.5\n"))
	require.NoError(t, err)

	// +100 cents moves A to A#
	assert.InDelta(t, 466.1637615180899, tuning, 1e-9)
	assert.InDelta(t, tuning, notes.Pitches()[0], 1e-9)
}

func TestLoadNotesOnlyTuning(t *testing.T) {
	notes, tuning, err := LoadNotes(strings.NewReader("-50\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, notes.Len())
	assert.InDelta(t, 440*0.9715319411536059, tuning, 1e-9)
}

func TestLoadNotesErrors(t *testing.T) {
	cases := map[string]string{
		"empty":           "",
		"bad tuning":      "sharp\n0,1,69,0.5\n",
		"bad field":       "0\n0,1,la,0.5\n",
		"too few columns": "0\n0,1,69\n",
		"too many":        "0\n0,1,69,0.5,1\n",
		"nan duration":    "0\n1,NaN,69,0.5\n",
		"infinite tuning": "Inf\n0,1,69,0.5\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := LoadNotes(strings.NewReader(content))
			requireParseError(t, err)
		})
	}
}

func TestLoadNotesReportsLine(t *testing.T) {
	_, _, err := LoadNotes(strings.NewReader("0\n0,1,69,0.5\n1,1,x,0.5\n"))
	perr := requireParseError(t, err)
	assert.Equal(t, 3, perr.Line)
}

func TestLoadNotesInvalidInterval(t *testing.T) {
	_, _, err := LoadNotes(strings.NewReader("0\n1,0,69,0.5\n"))
	var verr *annotation.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestLoadF0Example(t *testing.T) {
	f0, err := LoadF0(strings.NewReader(exampleF0))
	require.NoError(t, err)
	require.Equal(t, 4, f0.Len())

	assert := assert.New(t)
	assert.Equal(1.0, f0.Times()[2])
	assert.Equal(0.9, f0.Energies()[2])
	assert.Equal(220.0, f0.AutomaticFrequencies()[2])
	assert.Equal(0.0, f0.Frequencies()[2])
	assert.Equal(0.0, f0.Confidence()[2])
}

func TestLoadF0ConfidenceFollowsCorrectedFrequency(t *testing.T) {
	f0, err := LoadF0(strings.NewReader(exampleF0))
	require.NoError(t, err)

	freqs := f0.Frequencies()
	for i, c := range f0.Confidence() {
		if freqs[i] > 0 {
			assert.Equal(t, 1.0, c, "frame %d", i)
		} else {
			assert.Equal(t, 0.0, c, "frame %d", i)
		}
	}
}

func TestLoadF0Empty(t *testing.T) {
	f0, err := LoadF0(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, f0.Len())
	assert.Empty(t, f0.Confidence())
}

func TestLoadF0Errors(t *testing.T) {
	cases := map[string]string{
		"not a number":  "0.0 0.5 220 abc\n",
		"short row":     "0.0 0.5 220\n",
		"tab separated": "0.0\t0.5\t220\t220\n0.1 0.5 x 0\n",
		"nan time":      "0 1 220 220\nNaN 1 220 220\n0.5 1 220 220\n",
		"infinite f0":   "0 1 220 +Inf\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadF0(strings.NewReader(content))
			requireParseError(t, err)
		})
	}
}

func TestLoadF0NonIncreasingTimes(t *testing.T) {
	_, err := LoadF0(strings.NewReader("0.1 1 220 220\n0.1 1 220 220\n"))
	var verr *annotation.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestLoadFilesMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadF0File(filepath.Join(dir, "nope.f0.Corrected"))
	assert.ErrorIs(t, err, ErrMissingFile)

	_, _, err = LoadNotesFile(filepath.Join(dir, "nope.notes.Corrected"))
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestLoadFilesSetPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.notes.Corrected")
	require.NoError(t, os.WriteFile(path, []byte("0\n0,1,x,1\n"), 0644))

	_, _, err := LoadNotesFile(path)
	perr := requireParseError(t, err)
	assert.Equal(t, path, perr.Path)
	assert.Contains(t, err.Error(), path+":2")
}
