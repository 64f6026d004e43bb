package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/domain/reservation"
)

func newBookCmd(g *globalFlags) *cobra.Command {
	var (
		bookToken string
		paymentID int64
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Book with a token from details --commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, log, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := gw.BookReservation(cmd.Context(), bookToken, paymentID)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), raw); err != nil {
				return err
			}
			// the booking went through even if the body is not the expected shape
			b, err := reservation.DecodeBooking(raw)
			if err != nil {
				log.Warn().Err(err).Int64("payment_id", paymentID).Msg("booked but response not recognised")
				return nil
			}
			log.Info().Int64("payment_id", paymentID).Int64("reservation_id", b.ReservationID).Msg("reservation booked")
			fmt.Fprintf(cmd.ErrOrStderr(), "booked reservation %d\n", b.ReservationID)
			return nil
		},
	}

	c.Flags().StringVar(&bookToken, "book-token", "", "book token from details --commit")
	c.Flags().Int64Var(&paymentID, "payment-id", 0, "payment method id from user")
	_ = c.MarkFlagRequired("book-token")
	_ = c.MarkFlagRequired("payment-id")
	return c
}
