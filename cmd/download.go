package cmd

import (
	"fmt"

	"github.com/jsphweid/tonas/constants"
	"github.com/jsphweid/tonas/track"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(citeCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Explains how to obtain the dataset",
	Long: `TONAS is distributed on request only, so nothing is downloaded.
This prints where to ask for it and where to put it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		d := track.NewDataset(cfg.DataHome)
		out := cmd.OutOrStdout()
		fmt.Fprint(out, d.DownloadInfo())
		fmt.Fprint(out, constants.LicenseInfo)
	},
}

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Prints the BibTeX entries to cite",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), constants.Bibtex)
	},
}
