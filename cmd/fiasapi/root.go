package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fiasapi/pkg/auth"
	"fiasapi/pkg/config"
	"fiasapi/pkg/fias"
	"fiasapi/pkg/logger"
	"fiasapi/pkg/retry"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	tokenFlag  string
	portalURL  string

	cfg *config.Config
	log logger.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fiasapi",
	Short: "Query the FIAS public address registry from the command line",
	Long: `fiasapi is a command-line client for the FIAS public address registry.

It handles token bootstrap against the portal, caches tokens in the
system keychain or an encrypted file, and exposes the registry's
search and detail endpoints.

Tokens can also be supplied directly via --token or the FIAS_TOKEN
environment variable.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if portalURL != "" {
			cfg.API.PortalURL = portalURL
		}

		log, err = logger.New(&cfg.Logging)
		if err != nil {
			return err
		}
		logger.SetLogger(log)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "registry token (skips bootstrap and cache)")
	rootCmd.PersistentFlags().StringVar(&portalURL, "portal", "", "portal base URL for token bootstrap")
}

// resolveToken finds a usable token: the explicit flag first, then the
// store chain, then a fresh bootstrap against the portal.
func resolveToken(ctx context.Context) (string, error) {
	if tokenFlag != "" {
		return tokenFlag, nil
	}

	manager, err := auth.NewManager()
	if err == nil {
		if cached, err := manager.Retrieve(cfg.API.PortalURL); err == nil {
			log.DebugWithFields("using cached token", map[string]interface{}{
				"portal":   cfg.API.PortalURL,
				"obtained": cached.Obtained,
			})
			return cached.Value, nil
		}
	}

	return fetchToken(ctx)
}

// fetchToken bootstraps a fresh token, absorbing the portal's habitual
// first-request 500 with the configured retry policy.
func fetchToken(ctx context.Context) (string, error) {
	op := func() (string, error) {
		return fias.GetTokenContext(ctx, cfg.API.PortalURL)
	}

	if !cfg.Retry.Enabled {
		return op()
	}
	return retry.DoWithResult(ctx, op, retry.FromConfig(&cfg.Retry, log))
}

func newClient(token string) *fias.Client {
	return fias.New(token,
		fias.WithServiceURL(cfg.API.ServiceURL),
		fias.WithTimeout(cfg.API.Timeout),
		fias.WithUserAgent(cfg.API.UserAgent),
		fias.WithLogger(log),
	)
}

// callObject runs one registry call under the configured retry policy
func callObject(ctx context.Context, op func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	if !cfg.Retry.Enabled {
		return op()
	}
	return retry.DoWithResult(ctx, op, retry.FromConfig(&cfg.Retry, log))
}

// printJSON renders a result payload for the terminal
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
