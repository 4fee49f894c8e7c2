package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bisonvert/bv.libclient/trips"
)

func talksCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "talks",
		Short: "Read and manage your talks",
	}

	c.AddCommand(talksListCmd(opts), talksMessagesCmd(opts))
	return c
}

func talksListCmd(opts *rootOptions) *cobra.Command {
	var page, count int
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your talks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			list, err := a.talks.List(cmd.Context(), page, count)
			if err != nil {
				return err
			}

			if opts.format == "json" || jsonPath != "" {
				return printResult(os.Stdout, list, opts.format, jsonPath)
			}
			if len(list) == 0 {
				fmt.Println("(no talks)")
				return nil
			}
			for _, t := range list {
				tripLabel := ""
				if t.Trip != nil {
					tripLabel = t.Trip.String()
				}
				fmt.Printf("- [%d] %s  with=%s cancelled=%t\n",
					t.ID, tripLabel, t.FromUser.String(), t.Cancelled.Bool())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "1-indexed page")
	cmd.Flags().IntVar(&count, "count", trips.DefaultPageSize, "items per page")
	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func talksMessagesCmd(opts *rootOptions) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "messages <talk-id>",
		Short: "List the messages of a talk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid talk id %q", args[0])
			}

			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			msgs, err := a.talks.Messages(cmd.Context(), id)
			if err != nil {
				return err
			}

			if opts.format == "json" || jsonPath != "" {
				return printResult(os.Stdout, msgs, opts.format, jsonPath)
			}
			if len(msgs) == 0 {
				fmt.Println("(no messages)")
				return nil
			}
			for _, m := range msgs {
				fmt.Printf("- %s  %s -> %s: %s\n",
					m.Date.String(), m.Sender().String(), m.Recipient().String(), m.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}
