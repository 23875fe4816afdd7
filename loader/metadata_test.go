package loader

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/tonas/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMetadata(t *testing.T) {
	content := "01-D_AMairena.wav\tDeblas\tEn el barrio de Triana\tAntonio Mairena\n" +
		"\n" +
		"02-M1_Chocolate.wav\tMartinete 1\tTo\x00ito\tChocolate\x00\n"

	table, err := LoadMetadata(strings.NewReader(content))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(table, 2)
	assert.Equal(model.TrackMetadata{
		TrackID: "01-D_AMairena",
		Style:   "Deblas",
		Title:   "En el barrio de Triana",
		Singer:  "Antonio Mairena",
	}, table["01-D_AMairena"])
	assert.Equal("Toito", table["02-M1_Chocolate"].Title)
	assert.Equal("Chocolate", table["02-M1_Chocolate"].Singer)
}

func TestLoadMetadataDropsInvalidBytes(t *testing.T) {
	table, err := LoadMetadata(strings.NewReader("03-D_X.wav\tDeblas\tCante\xff\tSinger\n"))
	require.NoError(t, err)
	assert.Equal(t, "Cante", table["03-D_X"].Title)
}

func TestLoadMetadataShortRow(t *testing.T) {
	_, err := LoadMetadata(strings.NewReader("01-D_A.wav\tDeblas\tTitle\tSinger\n02-D_B.wav\tDeblas\n"))
	perr := requireParseError(t, err)
	assert.Equal(t, 2, perr.Line)
}

func TestLoadMetadataFileMissing(t *testing.T) {
	_, err := LoadMetadataFile(filepath.Join(t.TempDir(), "TONAS-Metadata.txt"))
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestWriteMetadataRoundTrip(t *testing.T) {
	table := model.MetadataTable{
		"01-D_A":  {TrackID: "01-D_A", Style: "Deblas", Title: "Uno", Singer: "A"},
		"02-M1_B": {TrackID: "02-M1_B", Style: "Martinete 1", Title: "Dos", Singer: "B"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMetadata(&buf, table, []string{"01-D_A", "02-M1_B", "unknown"}))
	assert.Equal(t, "01-D_A.wav\tDeblas\tUno\tA\n02-M1_B.wav\tMartinete 1\tDos\tB\n", buf.String())

	back, err := LoadMetadata(&buf)
	require.NoError(t, err)
	assert.Equal(t, table, back)
}
