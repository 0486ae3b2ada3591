package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// logger is shared by all commands; the root command raises the level to
// debug when --verbose is set.
var logger = newLogger(charmlog.InfoLevel)

func newLogger(level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:           "shelfpack2d",
		Short:         "shelfpack2d packs sprite images into texture atlases",
		Long:          `shelfpack2d packs a directory of PNG sprites into a texture atlas using shelf-based bin packing, and extracts sprites back out of a packed atlas.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(charmlog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPackCmd())
	root.AddCommand(newUnpackCmd())

	return root.Execute()
}

func main() {
	if err := execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
