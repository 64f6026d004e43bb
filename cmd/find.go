package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/domain/reservation"
)

type slotFilter struct {
	times string
	types string
}

func (f *slotFilter) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.times, "times", "", "comma separated start times to show, e.g. 19:00,19:30")
	cmd.Flags().StringVar(&f.types, "types", "", "comma separated table types to show, e.g. \"Dining Room,Bar\"")
}

func (f *slotFilter) apply(slots []reservation.Slot) []reservation.Slot {
	return reservation.FilterSlots(slots, reservation.SplitCSV(f.times), reservation.SplitCSV(f.types))
}

func newFindCmd(g *globalFlags) *cobra.Command {
	var (
		venueID   string
		day       string
		partySize int
		raw       bool
		filter    slotFilter
	)

	c := &cobra.Command{
		Use:   "find",
		Short: "Search availability at a venue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			body, err := gw.FindReservation(cmd.Context(), venueID, day, partySize)
			if err != nil {
				return err
			}
			if raw {
				return printJSON(cmd.OutOrStdout(), body)
			}
			slots, err := reservation.DecodeSlots(body)
			if err != nil {
				return err
			}
			return printSlots(cmd.OutOrStdout(), filter.apply(slots))
		},
	}

	c.Flags().StringVar(&venueID, "venue-id", "", "numeric venue id")
	c.Flags().StringVar(&day, "day", "", "date as YYYY-MM-DD")
	c.Flags().IntVar(&partySize, "party-size", 2, "number of guests")
	c.Flags().BoolVar(&raw, "raw", false, "print the response JSON instead of a table")
	filter.register(c)
	_ = c.MarkFlagRequired("venue-id")
	_ = c.MarkFlagRequired("day")
	return c
}
