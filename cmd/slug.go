package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/facade"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <url>",
		Short: "Print the venue slug of a reservation page URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := facade.ExtractVenueSlug(args[0])
			if slug == "" {
				return fmt.Errorf("%w: %s", facade.ErrNoVenueSlug, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug)
			return nil
		},
	}
}
