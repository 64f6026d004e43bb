package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/config"
	"github.com/example/resy-client/internal/domain/user"
	"github.com/example/resy-client/internal/resy"
)

func newProfileCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored credential profiles",
	}
	cmd.AddCommand(newProfileSetCmd(g))
	cmd.AddCommand(newProfileListCmd(g))
	cmd.AddCommand(newProfileDeleteCmd(g))
	return cmd
}

func newProfileSetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Store --api-key and --auth-token (or RESY_API_KEY and RESY_AUTH_TOKEN) under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			creds, err := profileCredentials(g, cfg)
			if err != nil {
				return err
			}
			svc, closeFn, err := credentialsService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			p, err := svc.Save(cmd.Context(), user.Profile{Name: args[0], APIKey: creds.APIKey, AuthToken: creds.AuthToken})
			if err != nil {
				return err
			}
			log.Debug().Str("profile_id", p.ID).Msg("profile saved")
			fmt.Fprintf(cmd.OutOrStdout(), "saved profile %q\n", p.Name)
			return nil
		},
	}
}

// profileCredentials takes the pair from flags when either flag is given,
// otherwise from the environment.
func profileCredentials(g *globalFlags, cfg config.Config) (resy.Credentials, error) {
	if g.apiKey != "" || g.authToken != "" {
		if g.apiKey == "" || g.authToken == "" {
			return resy.Credentials{}, fmt.Errorf("--api-key and --auth-token must be given together")
		}
		return resy.Credentials{APIKey: g.apiKey, AuthToken: g.authToken}, nil
	}
	if !cfg.HasCredentials() {
		return resy.Credentials{}, errNoCredentials
	}
	return cfg.Credentials(), nil
}

func newProfileListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			svc, closeFn, err := credentialsService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			ps, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			return printProfiles(cmd.OutOrStdout(), ps)
		},
	}
}

func newProfileDeleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := g.load()
			if err != nil {
				return err
			}
			svc, closeFn, err := credentialsService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete profile %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted profile %q\n", args[0])
			return nil
		},
	}
}
