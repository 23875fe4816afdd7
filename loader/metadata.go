package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/tonas/model"
)

const metadataColumns = 4

// LoadMetadata parses the tab separated metadata table
//
//	filename.wav	style	title	singer
//
// Stray NUL bytes and invalid UTF-8 are dropped before parsing and blank rows
// are skipped. The file name without its .wav extension is the track id.
func LoadMetadata(r io.Reader) (model.MetadataTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	raw = bytes.ReplaceAll(raw, []byte{0}, nil)
	text := strings.ToValidUTF8(string(raw), "")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	res := make(model.MetadataTable)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < metadataColumns {
			line, _ := reader.FieldPos(0)
			return nil, &ParseError{Line: line, Err: fmt.Errorf("expected %d columns, got %d", metadataColumns, len(record))}
		}

		id := strings.Replace(strings.TrimSpace(record[0]), ".wav", "", 1)
		res[id] = model.TrackMetadata{
			TrackID: id,
			Style:   strings.TrimSpace(record[1]),
			Title:   strings.TrimSpace(record[2]),
			Singer:  strings.TrimSpace(record[3]),
		}
	}
	return res, nil
}

// LoadMetadataFile is LoadMetadata on a path. A missing file yields
// ErrMissingFile.
func LoadMetadataFile(path string) (model.MetadataTable, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := LoadMetadata(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return table, nil
}

// WriteMetadata writes a table in the same tab separated layout it is read
// from, ordered by ids.
func WriteMetadata(w io.Writer, table model.MetadataTable, ids []string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	for _, id := range ids {
		m, ok := table[id]
		if !ok {
			continue
		}
		if err := writer.Write([]string{id + ".wav", m.Style, m.Title, m.Singer}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
