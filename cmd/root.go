package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/tonas/config"
	"github.com/jsphweid/tonas/db"
	"github.com/jsphweid/tonas/logger"
	"github.com/jsphweid/tonas/track"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configPath     string
	dataHome       string
	metadataSource string
	verbose        bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tonas",
	Short: "TONAS flamenco singing dataset tools",
	Long: `Access the TONAS dataset: a cappella flamenco recordings with
manually corrected f0 contours, note transcriptions and singer metadata.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logger.INFO
		if verbose {
			level = logger.DEBUG
		}
		logger.Init(os.Stderr, level)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataHome != "" {
			cfg.DataHome = dataHome
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default $TONAS_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&dataHome, "data-home", "", "dataset location (default $TONAS_HOME or ~/mir_datasets/TONAS)")
	rootCmd.PersistentFlags().StringVar(&metadataSource, "metadata-source", "file", "where track metadata comes from: file or dynamodb")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func newStore() (*db.Store, error) {
	return db.NewStore(cfg.DynamoDB.Endpoint, cfg.DynamoDB.Region, cfg.DynamoDB.Table)
}

// newDataset opens the configured data home. With the dynamodb source, ids
// restricts the metadata fetched to those tracks.
func newDataset(ids ...string) (*track.Dataset, error) {
	switch metadataSource {
	case "file":
		return track.NewDataset(cfg.DataHome), nil
	case "dynamodb":
		store, err := newStore()
		if err != nil {
			return nil, err
		}
		return track.NewDataset(cfg.DataHome, track.WithMetadataLoader(store.Loader(ids...))), nil
	default:
		return nil, fmt.Errorf("unknown metadata source %q, want file or dynamodb", metadataSource)
	}
}

// Run executes the command line args, writing command output to out. Flags
// start from their defaults on every call.
func Run(args []string, out io.Writer) error {
	if err := resetFlags(rootCmd); err != nil {
		return err
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func resetFlags(c *cobra.Command) error {
	var err error
	reset := func(f *pflag.Flag) {
		if e := f.Value.Set(f.DefValue); e != nil && err == nil {
			err = fmt.Errorf("could not reset --%s: %w", f.Name, e)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		if e := resetFlags(sub); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
