// Package cli implements the bvc command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bisonvert/bv.libclient/internal/buildinfo"
	"github.com/bisonvert/bv.libclient/internal/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:          "bvc",
		Short:        "bvc — BisonVert carpooling API client",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cleanup, err := logger.Setup(logger.Config{Debug: opts.debug})
			if err != nil {
				// Logging is best-effort for a CLI; keep going without it.
				fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
				return
			}
			opts.cleanupLog = cleanup
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.cleanupLog != nil {
				_ = opts.cleanupLog()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.profile, "profile", "", "profile file (default: user config dir, bvc/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to the bvc log file")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "pretty", "output format: pretty|json")

	cmd.AddCommand(
		tripsCmd(&opts),
		usersCmd(&opts),
		talksCmd(&opts),
		ratingsCmd(&opts),
		browseCmd(&opts),
		versionCmd(),
	)
	return cmd
}

type rootOptions struct {
	profile    string
	debug      bool
	format     string
	cleanupLog func() error
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(buildinfo.String())
		},
	}
}
