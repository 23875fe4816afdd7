package cmd

import (
	"github.com/jsphweid/tonas/logger"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Creates index",
	Long:  `Scans the data home for recordings and stores the track index next to them.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDataset()
		if err != nil {
			return err
		}
		index, err := d.WriteIndex()
		if err != nil {
			return err
		}
		logger.Info("Indexed %v tracks into %v", len(index), d.IndexPath())
		return nil
	},
}
