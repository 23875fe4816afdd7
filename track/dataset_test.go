package track

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/fixture"
	"github.com/jsphweid/tonas/loader"
	"github.com/jsphweid/tonas/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetTrackIDs(t *testing.T) {
	d := NewDataset(fixture.Dataset(t))

	ids, err := d.TrackIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"01-D_AMairena", "02-M1_Chocolate", "03-M2_Unlisted"}, ids)
}

func TestDatasetTrack(t *testing.T) {
	root := fixture.Dataset(t)
	d := NewDataset(root)

	tr, err := d.Track("02-M1_Chocolate")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(filepath.Join(root, "Martinete1", "02-M1_Chocolate.wav"), tr.AudioPath)
	singer, ok := tr.Singer()
	assert.True(ok)
	assert.Equal("Chocolate", singer)

	melody, err := tr.Melody()
	assert.NoError(err)
	assert.Nil(melody)

	tuning, err := tr.TuningFrequency()
	require.NoError(t, err)
	assert.Less(tuning, 440.0)
}

func TestDatasetTrackWithoutMetadataRow(t *testing.T) {
	d := NewDataset(fixture.Dataset(t))

	tr, err := d.Track("03-M2_Unlisted")
	require.NoError(t, err)
	_, ok := tr.Style()
	assert.False(t, ok)
}

func TestDatasetUnknownTrack(t *testing.T) {
	d := NewDataset(fixture.Dataset(t))
	_, err := d.Track("99-X")
	assert.ErrorIs(t, err, ErrUnknownTrack)
}

func TestDatasetMissingMetadata(t *testing.T) {
	root := fixture.Dataset(t)
	require.NoError(t, os.Remove(filepath.Join(root, constants.MetadataFile)))
	d := NewDataset(root)

	_, err := d.Metadata()
	assert.ErrorIs(t, err, ErrMetadataNotFound)
	assert.ErrorIs(t, err, loader.ErrMissingFile)
	assert.Contains(t, err.Error(), "tonas download")

	_, err = d.Track("01-D_AMairena")
	assert.ErrorIs(t, err, ErrMetadataNotFound)
}

func TestDatasetMetadataLoadedOnce(t *testing.T) {
	calls := 0
	d := NewDataset(fixture.Dataset(t), WithMetadataLoader(func() (model.MetadataTable, error) {
		calls++
		return model.MetadataTable{"01-D_AMairena": {TrackID: "01-D_AMairena", Singer: "from store"}}, nil
	}))

	for i := 0; i < 3; i++ {
		tr, err := d.Track("01-D_AMairena")
		require.NoError(t, err)
		singer, _ := tr.Singer()
		assert.Equal(t, "from store", singer)
	}
	assert.Equal(t, 1, calls)
}

func TestDatasetPersistedIndex(t *testing.T) {
	root := fixture.Dataset(t)
	written, err := NewDataset(root).WriteIndex()
	require.NoError(t, err)
	assert.Len(t, written, 3)

	// recordings added after indexing are not listed
	fixture.Write(t, root, "Deblas/04-D_New.wav", fixture.WAV(nil, 44100))

	ids, err := NewDataset(root).TrackIDs()
	require.NoError(t, err)
	assert.NotContains(t, ids, "04-D_New")

	rebuilt, err := NewDataset(root).BuildIndex()
	require.NoError(t, err)
	assert.Equal(t, "Deblas", rebuilt["04-D_New"])
}

func TestDatasetValidate(t *testing.T) {
	root := fixture.Dataset(t)
	fixture.Write(t, root, "Martinete1/02-M1_Chocolate"+constants.NotesSuffix, []byte("0\n1,-1,60,0.3\n"))

	failures, err := NewDataset(root).Validate()
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "02-M1_Chocolate", failures[0].TrackID)
	assert.Contains(t, failures[0].Error(), "02-M1_Chocolate: ")
}

func TestDatasetDownloadInfo(t *testing.T) {
	d := NewDataset("/somewhere/TONAS")
	assert.Contains(t, d.DownloadInfo(), "/somewhere/TONAS")
	assert.Contains(t, d.DownloadInfo(), "zenodo.org/record/1290722")
}

func TestDatasetIndexErrors(t *testing.T) {
	root := t.TempDir()
	fixture.Write(t, root, constants.IndexFile, []byte("not gob"))

	_, err := NewDataset(root).TrackIDs()
	assert.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}
