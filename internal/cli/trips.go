package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bisonvert/bv.libclient/trips"
)

func tripsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "trips",
		Short: "Browse and manage trips",
	}

	c.AddCommand(
		tripsListCmd(opts, false),
		tripsListCmd(opts, true),
		tripsCountCmd(opts),
		tripsGetCmd(opts),
		tripsSearchCmd(opts),
		tripsDeleteCmd(opts),
	)
	return c
}

func tripsListCmd(opts *rootOptions, mine bool) *cobra.Command {
	var page, count int
	var orderedBy, jsonPath string

	use, short := "list", "List public trips"
	if mine {
		use, short = "mine", "List your own trips"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			var list []*trips.Trip
			if mine {
				list, err = a.trips.ListMine(cmd.Context(), page, count, orderedBy)
			} else {
				list, err = a.trips.List(cmd.Context(), page, count, orderedBy)
			}
			if err != nil {
				return err
			}
			return printResult(os.Stdout, list, opts.format, jsonPath)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "1-indexed page")
	cmd.Flags().IntVar(&count, "count", trips.DefaultPageSize, "items per page")
	cmd.Flags().StringVar(&orderedBy, "ordered-by", "date", "sort field")
	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func tripsCountCmd(opts *rootOptions) *cobra.Command {
	var mine bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count trips on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			var n int
			if mine {
				n, err = a.trips.CountMine(cmd.Context())
			} else {
				n, err = a.trips.Count(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "count only your own trips")
	return cmd
}

func tripsGetCmd(opts *rootOptions) *cobra.Command {
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid trip id %q", args[0])
			}

			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			trip, err := a.trips.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResult(os.Stdout, trip, opts.format, jsonPath)
		},
	}

	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func tripsSearchCmd(opts *rootOptions) *cobra.Command {
	var criteria trips.SearchCriteria
	var tripType int
	var jsonPath string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search matching offers and demands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("type") {
				tt := trips.TripType(tripType)
				criteria.Type = &tt
			}

			result, err := a.trips.Search(cmd.Context(), criteria)
			if err != nil {
				return err
			}
			return printResult(os.Stdout, result, opts.format, jsonPath)
		},
	}

	cmd.Flags().IntVar(&criteria.TripID, "trip", 0, "scope the search to one trip's route")
	cmd.Flags().IntVar(&tripType, "type", 0, "trip type: 0=offer 1=demand 2=both")
	cmd.Flags().StringVar(&criteria.Date, "date", "", "trip date (DD/MM/YYYY)")
	cmd.Flags().StringVar(&criteria.DepartureCity, "from", "", "departure city")
	cmd.Flags().StringVar(&criteria.ArrivalCity, "to", "", "arrival city")
	cmd.Flags().Float64Var(&criteria.DepartureRadius, "from-radius", 0, "departure radius (km)")
	cmd.Flags().Float64Var(&criteria.ArrivalRadius, "to-radius", 0, "arrival radius (km)")
	cmd.Flags().StringVar(&jsonPath, "extract", "", "JSONPath expression applied to the result")
	return cmd
}

func tripsDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your trips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid trip id %q", args[0])
			}

			a, err := loadApp(opts)
			if err != nil {
				return err
			}

			if err := a.trips.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("trip %d deleted\n", id)
			return nil
		},
	}
}
