package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/application/usecases"
)

func newPingCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the credentials are accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			u, err := usecases.Ping{Gateway: gw}.Execute(cmd.Context())
			if err != nil {
				return err
			}
			var about []string
			if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
				about = append(about, name)
			}
			if pm, ok := u.DefaultPaymentMethod(); ok {
				about = append(about, fmt.Sprintf("default payment id %d", pm.ID))
			}
			out := cmd.OutOrStdout()
			if len(about) == 0 {
				fmt.Fprintln(out, "resy: ok")
				return nil
			}
			fmt.Fprintf(out, "resy: ok (%s)\n", strings.Join(about, ", "))
			return nil
		},
	}
}

func newUserCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Print the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, _, err := g.gateway(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := gw.GetUser(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), raw)
		},
	}
}
