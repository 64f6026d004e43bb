package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/domain/reservation"
	"github.com/example/resy-client/internal/resy"
)

func newDetailsCmd(g *globalFlags) *cobra.Command {
	var (
		configID  string
		day       string
		partySize int
		commit    bool
	)

	c := &cobra.Command{
		Use:   "details",
		Short: "Fetch details for a slot; --commit also issues a book token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, log, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			mode := resy.DryRun
			if commit {
				mode = resy.GenerateToken
			}
			raw, err := gw.GetReservationDetails(cmd.Context(), mode, configID, partySize, day)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), raw); err != nil {
				return err
			}
			if !commit {
				return nil
			}

			// stdout stays pure JSON; the summary goes to stderr
			d, err := reservation.DecodeDetails(raw)
			if err != nil {
				return err
			}
			if d.BookToken == "" {
				log.Warn().Str("config_id", configID).Msg("details response carried no book token")
				return nil
			}
			summary := fmt.Sprintf("book token expires %s", d.BookTokenExpires)
			if pm, ok := d.DefaultPaymentMethod(); ok {
				summary += fmt.Sprintf(", default payment id %d", pm.ID)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), summary)
			return nil
		},
	}

	c.Flags().StringVar(&configID, "config-id", "", "slot config id from find")
	c.Flags().StringVar(&day, "day", "", "date as YYYY-MM-DD")
	c.Flags().IntVar(&partySize, "party-size", 2, "number of guests")
	c.Flags().BoolVar(&commit, "commit", false, "request a book token")
	_ = c.MarkFlagRequired("config-id")
	_ = c.MarkFlagRequired("day")
	return c
}
