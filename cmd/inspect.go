package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/tonas/pitch"
	"github.com/jsphweid/tonas/track"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <track_id>",
	Short: "Inspects a track",
	Long:  `Prints the metadata, f0 statistics and note list of a track.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDataset(args[0])
		if err != nil {
			return err
		}
		t, err := d.Track(args[0])
		if err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), t)
	},
}

func inspect(out io.Writer, t *track.Track) error {
	fmt.Fprintf(out, "track: %v\n", t.ID)
	if m, ok := t.Metadata(); ok {
		fmt.Fprintf(out, "style: %v\nsinger: %v\ntitle: %v\n", m.Style, m.Singer, m.Title)
	}

	melody, err := t.Melody()
	if err != nil {
		return err
	}
	if melody == nil {
		fmt.Fprintln(out, "melody: none")
	} else {
		voiced := 0
		for i := 0; i < melody.Len(); i++ {
			if melody.Voiced(i) {
				voiced++
			}
		}
		fmt.Fprintf(out, "melody: %v frames, %v voiced\n", melody.Len(), voiced)
	}

	notes, err := t.Notes()
	if err != nil {
		return err
	}
	if notes == nil {
		fmt.Fprintln(out, "notes: none")
		return nil
	}
	tuning, err := t.TuningFrequency()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "tuning: %.2f Hz\nnotes: %v\n", tuning, notes.Len())

	pitches := notes.Pitches()
	for i, iv := range notes.Intervals() {
		name := "-"
		if n, ok := pitch.NearestNote(pitches[i], tuning); ok {
			name = fmt.Sprintf("%v", n)
		}
		fmt.Fprintf(out, "  %8.3f %8.3f %9.2f Hz  %v\n", iv.Start, iv.End, pitches[i], name)
	}
	return nil
}
