package cli

import (
	"github.com/spf13/cobra"

	"github.com/bisonvert/bv.libclient/internal/logger"
	"github.com/bisonvert/bv.libclient/internal/tui"
)

func browseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse trips interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			return tui.Run(tui.Deps{
				Trips:  a.trips,
				Logger: logger.L(),
			})
		},
	}
}
