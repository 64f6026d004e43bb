package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/resy-client/internal/application/usecases"
	"github.com/example/resy-client/internal/config"
	"github.com/example/resy-client/internal/infrastructure/crypto"
	"github.com/example/resy-client/internal/infrastructure/postgres"
	"github.com/example/resy-client/internal/logger"
	"github.com/example/resy-client/internal/resy"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

var errNoCredentials = errors.New("missing credentials: set RESY_API_KEY and RESY_AUTH_TOKEN, pass --api-key and --auth-token, or use --profile")

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	profile   string
	apiKey    string
	authToken string
	logLevel  string
	debug     bool
}

func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "resyclient",
		Short:         "Minimal client for the Resy reservation API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.profile, "profile", "", "load credentials from a stored profile")
	pf.StringVar(&g.apiKey, "api-key", "", "resy api key (overrides RESY_API_KEY and --profile)")
	pf.StringVar(&g.authToken, "auth-token", "", "resy auth token (overrides RESY_AUTH_TOKEN and --profile)")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (overrides RESY_LOG_LEVEL)")
	pf.BoolVar(&g.debug, "debug", false, "dump requests and responses with credentials redacted")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newSlugCmd())
	root.AddCommand(newPingCmd(g))
	root.AddCommand(newUserCmd(g))
	root.AddCommand(newVenueCmd(g))
	root.AddCommand(newFindCmd(g))
	root.AddCommand(newDetailsCmd(g))
	root.AddCommand(newBookCmd(g))
	root.AddCommand(newCheckCmd(g))
	root.AddCommand(newProfileCmd(g))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (g *globalFlags) load() (config.Config, zerolog.Logger, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, zerolog.Logger{}, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.debug {
		cfg.Debug = true
	}
	// dumps are logged at debug; raise the level unless one was chosen explicitly
	if _, levelFromEnv := os.LookupEnv("RESY_LOG_LEVEL"); cfg.Debug && g.logLevel == "" && !levelFromEnv {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New("resyclient", cfg.LogLevel, cfg.LogPretty), nil
}

// gateway builds a gateway from env, then the stored profile, then flags;
// later sources win.
func (g *globalFlags) gateway(ctx context.Context) (*resy.Gateway, zerolog.Logger, error) {
	cfg, log, err := g.load()
	if err != nil {
		return nil, log, err
	}

	creds := cfg.Credentials()
	if g.profile != "" {
		svc, closeFn, err := credentialsService(ctx, cfg)
		if err != nil {
			return nil, log, err
		}
		p, err := svc.Get(ctx, g.profile)
		closeFn()
		if err != nil {
			return nil, log, fmt.Errorf("load profile %q: %w", g.profile, err)
		}
		creds = resy.Credentials{APIKey: p.APIKey, AuthToken: p.AuthToken}
	}
	if g.apiKey != "" {
		creds.APIKey = g.apiKey
	}
	if g.authToken != "" {
		creds.AuthToken = g.authToken
	}
	if creds.APIKey == "" || creds.AuthToken == "" {
		return nil, log, errNoCredentials
	}

	opts := append(cfg.GatewayOptions(), resy.WithLogger(log))
	gw, err := resy.New(creds, opts...)
	if err != nil {
		return nil, log, err
	}
	return gw, log, nil
}

// credentialsService opens the profile store. The returned func closes it.
func credentialsService(ctx context.Context, cfg config.Config) (usecases.CredentialsService, func(), error) {
	if cfg.DatabaseURL == "" {
		return usecases.CredentialsService{}, nil, errors.New("RESY_DATABASE_URL is required for profiles")
	}
	if len(cfg.CredEncKey) == 0 {
		return usecases.CredentialsService{}, nil, errors.New("RESY_CRED_ENC_KEY is required for profiles (see `resyclient keys`)")
	}
	aead, err := crypto.New(cfg.CredEncKey)
	if err != nil {
		return usecases.CredentialsService{}, nil, err
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return usecases.CredentialsService{}, nil, fmt.Errorf("open database: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return usecases.CredentialsService{}, nil, fmt.Errorf("migrate: %w", err)
	}
	return usecases.CredentialsService{
		Profiles: postgres.NewProfileRepo(pool),
		AEAD:     aead,
	}, pool.Close, nil
}
