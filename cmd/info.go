package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [track_id...]",
	Short: "Lists tracks and their metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDataset(args...)
		if err != nil {
			return err
		}
		ids := args
		if len(ids) == 0 {
			if ids, err = d.TrackIDs(); err != nil {
				return err
			}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TRACK\tSTYLE\tSINGER\tTITLE")
		for _, id := range ids {
			t, err := d.Track(id)
			if err != nil {
				return err
			}
			m, _ := t.Metadata()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, m.Style, m.Singer, m.Title)
		}
		return w.Flush()
	},
}
