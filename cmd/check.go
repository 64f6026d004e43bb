package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/facade"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	var (
		day       string
		partySize int
		quiet     bool
		filter    slotFilter
	)

	c := &cobra.Command{
		Use:   "check <url>",
		Short: "Resolve a venue from its page URL and list open slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, log, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			fc := facade.New(gw, facade.WithLogger(log))
			v, err := fc.ResolveVenue(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if quiet {
				ok, err := fc.CheckReservations(cmd.Context(), day, partySize)
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(out, "available")
				} else {
					fmt.Fprintln(out, "unavailable")
				}
				return nil
			}

			slots, err := fc.Slots(cmd.Context(), day, partySize)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (venue %s) on %s for %d:\n", v.Name, fc.VenueID(), day, partySize)
			return printSlots(out, filter.apply(slots))
		},
	}

	c.Flags().StringVar(&day, "day", "", "date as YYYY-MM-DD")
	c.Flags().IntVar(&partySize, "party-size", 2, "number of guests")
	c.Flags().BoolVar(&quiet, "quiet", false, "only print whether any slot is open")
	filter.register(c)
	_ = c.MarkFlagRequired("day")
	c.MarkFlagsMutuallyExclusive("quiet", "times")
	c.MarkFlagsMutuallyExclusive("quiet", "types")
	return c
}
