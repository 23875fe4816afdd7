package track

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/loader"
	"github.com/jsphweid/tonas/logger"
	"github.com/jsphweid/tonas/model"
	"github.com/jsphweid/tonas/util"
)

var ErrMetadataNotFound = fmt.Errorf("metadata not found, obtain the dataset first (see `tonas download`): %w", loader.ErrMissingFile)

var ErrUnknownTrack = errors.New("unknown track")

// Index maps a track id to the directory holding its files, relative to the
// data home.
type Index = map[string]string

type MetadataLoader func() (model.MetadataTable, error)

type Option func(*Dataset)

// WithMetadataLoader replaces the metadata table file as the source of track
// metadata.
func WithMetadataLoader(l MetadataLoader) Option {
	return func(d *Dataset) { d.loadMetadata = l }
}

// Dataset is a local copy of TONAS. The metadata table and the track index are
// computed once per Dataset.
type Dataset struct {
	DataHome string

	loadMetadata MetadataLoader

	metadataOnce sync.Once
	metadata     model.MetadataTable
	metadataErr  error

	indexOnce sync.Once
	index     Index
	indexErr  error
}

func NewDataset(dataHome string, opts ...Option) *Dataset {
	d := &Dataset{DataHome: dataHome}
	d.loadMetadata = d.loadMetadataFile
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dataset) MetadataPath() string {
	return filepath.Join(d.DataHome, constants.MetadataFile)
}

func (d *Dataset) IndexPath() string {
	return filepath.Join(d.DataHome, constants.IndexFile)
}

// DownloadInfo explains how to obtain the data for this data home.
func (d *Dataset) DownloadInfo() string {
	return fmt.Sprintf(constants.DownloadInfo, d.DataHome)
}

func (d *Dataset) loadMetadataFile() (model.MetadataTable, error) {
	table, err := loader.LoadMetadataFile(d.MetadataPath())
	if errors.Is(err, loader.ErrMissingFile) {
		return nil, fmt.Errorf("%w (looked in %s)", ErrMetadataNotFound, d.MetadataPath())
	}
	return table, err
}

func (d *Dataset) Metadata() (model.MetadataTable, error) {
	d.metadataOnce.Do(func() {
		d.metadata, d.metadataErr = d.loadMetadata()
	})
	return d.metadata, d.metadataErr
}

// Index returns the persisted index when the data home has one, otherwise it
// scans the data home for recordings.
func (d *Dataset) Index() (Index, error) {
	d.indexOnce.Do(func() {
		index, err := util.ReadBinary[Index](d.IndexPath())
		switch {
		case err == nil:
			d.index = index
		case errors.Is(err, fs.ErrNotExist):
			d.index, d.indexErr = d.BuildIndex()
		default:
			d.indexErr = err
		}
	})
	return d.index, d.indexErr
}

// BuildIndex scans the data home for recordings, ignoring any persisted index.
func (d *Dataset) BuildIndex() (Index, error) {
	paths, err := util.GatherAllPaths(d.DataHome, constants.AudioSuffix)
	if err != nil {
		return nil, err
	}
	index := make(Index)
	for _, p := range paths {
		id := strings.TrimSuffix(filepath.Base(p), constants.AudioSuffix)
		if prev, ok := index[id]; ok {
			logger.Warn("Track %v found in both %v and %v, keeping %v", id, prev, filepath.Dir(p), prev)
			continue
		}
		index[id] = filepath.Dir(p)
	}
	return index, nil
}

// WriteIndex scans the data home and persists the result for later runs.
func (d *Dataset) WriteIndex() (Index, error) {
	index, err := d.BuildIndex()
	if err != nil {
		return nil, err
	}
	if err := util.CreateBinary(d.IndexPath(), index); err != nil {
		return nil, err
	}
	return index, nil
}

func (d *Dataset) TrackIDs() ([]string, error) {
	index, err := d.Index()
	if err != nil {
		return nil, err
	}
	return util.SortedKeys(index), nil
}

// Track builds the Track for id. It fails when id is not part of the index or
// when the metadata table cannot be loaded.
func (d *Dataset) Track(id string) (*Track, error) {
	index, err := d.Index()
	if err != nil {
		return nil, err
	}
	dir, ok := index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrack, id)
	}
	table, err := d.Metadata()
	if err != nil {
		return nil, err
	}
	lookup := func(trackID string) (model.TrackMetadata, bool) {
		m, ok := table[trackID]
		return m, ok
	}
	return New(id, filepath.Join(d.DataHome, dir), lookup), nil
}

type TrackError struct {
	TrackID string
	Err     error
}

func (e TrackError) Error() string {
	return fmt.Sprintf("%s: %v", e.TrackID, e.Err)
}

// Validate parses the annotations of every track and returns the failures.
// Tracks without an annotation file are not failures.
func (d *Dataset) Validate() ([]TrackError, error) {
	ids, err := d.TrackIDs()
	if err != nil {
		return nil, err
	}

	var failures []TrackError
	for i, id := range ids {
		logger.Debug("Processing %v of %v tracks", i+1, len(ids))
		t, err := d.Track(id)
		if err != nil {
			return nil, err
		}
		if _, err := t.Melody(); err != nil {
			failures = append(failures, TrackError{TrackID: id, Err: err})
		}
		if _, err := t.Notes(); err != nil {
			failures = append(failures, TrackError{TrackID: id, Err: err})
		}
	}
	return failures, nil
}
