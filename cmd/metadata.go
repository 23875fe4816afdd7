package cmd

import (
	"github.com/jsphweid/tonas/loader"
	"github.com/jsphweid/tonas/logger"
	"github.com/jsphweid/tonas/track"
	"github.com/jsphweid/tonas/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(publishCmd)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Prints the metadata table",
	Long: `Prints the metadata table in its tab separated layout, read from the
source chosen with --metadata-source.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDataset()
		if err != nil {
			return err
		}
		table, err := d.Metadata()
		if err != nil {
			return err
		}
		return loader.WriteMetadata(cmd.OutOrStdout(), table, util.SortedKeys(table))
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Uploads the local metadata table to DynamoDB",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// always the local file, whatever --metadata-source says
		table, err := track.NewDataset(cfg.DataHome).Metadata()
		if err != nil {
			return err
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.Put(table); err != nil {
			return err
		}
		logger.Info("Published %v tracks to %v", len(table), cfg.DynamoDB.Table)
		return nil
	},
}
