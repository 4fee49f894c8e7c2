package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bisonvert/bv.libclient/ratings"
)

func ratingsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "ratings",
		Short: "Read ratings and rate your co-riders",
	}

	c.AddCommand(
		ratingsListCmd(opts, "given", "Ratings you handed out"),
		ratingsListCmd(opts, "received", "Ratings you received"),
		ratingsPendingCmd(opts),
		ratingsRateCmd(opts),
	)
	return c
}

func ratingsListCmd(opts *rootOptions, direction, short string) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   direction,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			var list []*ratings.Rating
			if direction == "given" {
				list, err = a.ratings.Given(cmd.Context())
			} else {
				list, err = a.ratings.Received(cmd.Context())
			}
			if err != nil {
				return err
			}

			if opts.format == "json" || jsonPath != "" {
				return printResult(os.Stdout, list, opts.format, jsonPath)
			}
			if len(list) == 0 {
				fmt.Println("(no ratings)")
				return nil
			}
			for _, r := range list {
				fmt.Printf("- [%d] %d/5 from=%s to=%s: %s\n",
					r.ID, r.Mark, r.FromUser.String(), r.User.String(), r.Comment)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func ratingsPendingCmd(opts *rootOptions) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Open rating reports awaiting your mark",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			list, err := a.ratings.Pending(cmd.Context())
			if err != nil {
				return err
			}

			if opts.format == "json" || jsonPath != "" {
				return printResult(os.Stdout, list, opts.format, jsonPath)
			}
			if len(list) == 0 {
				fmt.Println("(nothing to rate)")
				return nil
			}
			for _, tr := range list {
				fmt.Printf("- [%d] %s / %s  opened=%t\n",
					tr.ID, tr.User1.String(), tr.User2.String(), tr.Opened.Bool())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func ratingsRateCmd(opts *rootOptions) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "rate <temprating-id> <mark>",
		Short: "Close a rating report with a mark (0-5)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid temprating id %q", args[0])
			}
			mark, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid mark %q", args[1])
			}

			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			if err := a.ratings.Rate(cmd.Context(), id, mark, comment); err != nil {
				return err
			}
			fmt.Println("rating submitted")
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "comment attached to the mark")
	return cmd
}
