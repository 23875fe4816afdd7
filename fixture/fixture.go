// Package fixture writes small TONAS-shaped data homes for tests. It is only
// imported from _test.go files.
package fixture

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/tonas/constants"
)

const (
	Notes = "0\n0.0,1.0,69,0.8\n1.0,0.5,81,0.6\n"
	F0    = "0.0 0.5 219.0 220.0\n0.5 0.7 221.5 221.0\n1.0 0.9 220.0 0.0\n"

	Metadata = "01-D_AMairena.wav\tDeblas\tEn el barrio de Triana\tAntonio Mairena\n" +
		"02-M1_Chocolate.wav\tMartinete 1\tA la fragua\tChocolate\x00\n" +
		"\n"
)

// Dataset writes a data home with:
//
//	Deblas/01-D_AMairena     audio, f0, notes
//	Martinete1/02-M1_Chocolate audio, notes
//	Martinete2/03-M2_Unlisted  audio only, absent from the metadata table
func Dataset(t testing.TB) string {
	t.Helper()
	root := t.TempDir()

	Write(t, root, "Deblas/01-D_AMairena"+constants.AudioSuffix, WAV(make([]float64, 4410), 44100))
	Write(t, root, "Deblas/01-D_AMairena"+constants.F0Suffix, []byte(F0))
	Write(t, root, "Deblas/01-D_AMairena"+constants.NotesSuffix, []byte(Notes))

	Write(t, root, "Martinete1/02-M1_Chocolate"+constants.AudioSuffix, WAV(make([]float64, 441), 44100))
	Write(t, root, "Martinete1/02-M1_Chocolate"+constants.NotesSuffix, []byte("-25\n0.5,0.25,60,0.3\n"))

	Write(t, root, "Martinete2/03-M2_Unlisted"+constants.AudioSuffix, WAV(make([]float64, 441), 44100))

	Write(t, root, constants.MetadataFile, []byte(Metadata))
	return root
}

func Write(t testing.TB, root, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

// WAV encodes mono samples in [-1, 1] as 16-bit PCM.
func WAV(samples []float64, sampleRate int) []byte {
	data := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		data[i] = int16(s * 32767.0)
	}
	dataSize := uint32(len(data) * 2)

	buf := new(bytes.Buffer)
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	binary.Write(buf, binary.LittleEndian, data)
	return buf.Bytes()
}
