package cmd

import (
	"fmt"

	"github.com/jsphweid/tonas/logger"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parses every annotation in the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDataset()
		if err != nil {
			return err
		}
		failures, err := d.Validate()
		if err != nil {
			return err
		}
		for _, f := range failures {
			logger.Error("%v", f)
		}
		if len(failures) > 0 {
			return fmt.Errorf("%d annotation files failed to load", len(failures))
		}
		logger.Info("All annotations are valid")
		return nil
	},
}
