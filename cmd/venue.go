package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/facade"
)

func newVenueCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "venue <slug|url>",
		Short: "Look up a venue by slug or reservation page URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := gw.GetVenue(cmd.Context(), venueSlugArg(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
}

// venueSlugArg accepts either a bare slug or a URL containing venues/<slug>.
func venueSlugArg(arg string) string {
	if strings.Contains(arg, "venues/") {
		return facade.ExtractVenueSlug(arg)
	}
	return arg
}
