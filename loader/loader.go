// Package loader parses the TONAS annotation files into validated annotations.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

var ErrMissingFile = errors.New("file not found")

// ParseError reports malformed content in an annotation file. Line is 1-based
// and zero when the problem is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseFloat(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", field)
	}
	return v, nil
}

// openFile maps a missing path onto ErrMissingFile.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	return f, nil
}

// withPath fills in the path of a ParseError produced from a bare reader.
func withPath(err error, path string) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.Path == "" {
		perr.Path = path
	}
	return err
}
