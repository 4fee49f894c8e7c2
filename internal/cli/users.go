package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func usersCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "users",
		Short: "Look users up",
	}

	c.AddCommand(usersMeCmd(opts), usersGetCmd(opts))
	return c
}

func usersMeCmd(opts *rootOptions) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the user you are authenticated as",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			u, err := a.users.Active(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(os.Stdout, u, opts.format, jsonPath)
		},
	}

	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func usersGetCmd(opts *rootOptions) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			u, err := a.users.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(os.Stdout, u, opts.format, jsonPath)
		},
	}

	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}
