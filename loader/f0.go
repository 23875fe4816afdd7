package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/tonas/annotation"
)

const f0Columns = 4

// LoadF0 reads whitespace separated rows of
//
//	time energy automatic_frequency corrected_frequency
//
// Blank lines and lines starting with '#' are skipped. A frame is confident
// exactly when its corrected frequency is positive.
func LoadF0(r io.Reader) (*annotation.F0Data, error) {
	var times, energies, freqs, freqsCorr, confidence []float64

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != f0Columns {
			return nil, &ParseError{Line: lineNum, Err: fmt.Errorf("expected %d columns, got %d", f0Columns, len(fields))}
		}
		var row [f0Columns]float64
		for i, field := range fields {
			v, err := parseFloat(field)
			if err != nil {
				return nil, &ParseError{Line: lineNum, Err: err}
			}
			row[i] = v
		}

		// column order on disk differs from the annotation's field order
		times = append(times, row[0])
		energies = append(energies, row[1])
		freqs = append(freqs, row[2])
		freqsCorr = append(freqsCorr, row[3])
		if row[3] > 0 {
			confidence = append(confidence, 1)
		} else {
			confidence = append(confidence, 0)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Err: err}
	}

	if confidence == nil {
		confidence = []float64{}
	}
	return annotation.NewF0Data(times, freqs, freqsCorr, energies, confidence)
}

// LoadF0File is LoadF0 on a path. A missing file yields ErrMissingFile.
func LoadF0File(path string) (*annotation.F0Data, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	f0, err := LoadF0(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return f0, nil
}
