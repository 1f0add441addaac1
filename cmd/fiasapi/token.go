package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fiasapi/pkg/auth"
)

var saveToken bool

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch a registry token from the portal",
	Long: `Fetch a fresh authentication token from the portal's bootstrap page.

With --save the token is cached in the system keychain (or an encrypted
file when no keychain is available) and reused by later commands.`,
	Example: `  # Print a fresh token
  fiasapi token

  # Fetch and cache for later commands
  fiasapi token --save`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().BoolVar(&saveToken, "save", false, "cache the token for later commands")
}

func runToken(cmd *cobra.Command, args []string) error {
	token, err := fetchToken(cmd.Context())
	if err != nil {
		return fmt.Errorf("token bootstrap failed: %w", err)
	}

	if saveToken {
		ensurePassphrase()
		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("failed to open token store: %w", err)
		}
		err = manager.Store(cfg.API.PortalURL, &auth.Token{
			Value:    token,
			Obtained: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to cache token: %w", err)
		}
		log.InfoWithFields("token cached", map[string]interface{}{
			"portal": cfg.API.PortalURL,
		})
	}

	fmt.Println(token)
	return nil
}
