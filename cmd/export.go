package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/tonas/jams"
	"github.com/jsphweid/tonas/logger"
	"github.com/jsphweid/tonas/midi"
	"github.com/jsphweid/tonas/track"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var errNoNotes = errors.New("track has no note annotation")

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "jams", "jams or midi")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <track_id>",
	Short: "Exports a track as a JAMS document or its notes as MIDI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		d, err := newDataset(args[0])
		if err != nil {
			return err
		}
		t, err := d.Track(args[0])
		if err != nil {
			return err
		}

		if exportOut == "" {
			return export(cmd.OutOrStdout(), t, exportFormat)
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("could not close %s: %w", exportOut, cerr)
			}
		}()
		return export(f, t, exportFormat)
	},
}

func export(w io.Writer, t *track.Track, format string) error {
	switch format {
	case "jams":
		doc, err := jams.FromTrack(t)
		if err != nil {
			return err
		}
		return jams.Write(w, doc)
	case "midi":
		notes, err := t.Notes()
		if err != nil {
			return err
		}
		if notes == nil {
			return fmt.Errorf("%w: %s", errNoNotes, t.ID)
		}
		tuning, err := t.TuningFrequency()
		if err != nil {
			return err
		}
		n, err := midi.WriteNotes(w, notes, tuning, t.ID)
		if err != nil {
			return err
		}
		if skipped := notes.Len() - n; skipped > 0 {
			logger.Warn("Skipped %v notes of %v outside the MIDI range", skipped, t.ID)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q, want jams or midi", format)
	}
}
