package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fiasapi/pkg/fias"
)

var (
	detailsID      int64
	detailsGUID    string
	detailsCadnum  string
	administrative bool
)

// detailsCmd represents the details command
var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Look up an address object",
	Long: `Look up one address object by numeric id, GUID or cadastral number
and print the registry's response as JSON.

Exactly one of --id, --guid or --cadnum must be given. The municipal
hierarchy is used unless --administrative is set.`,
	Example: `  fiasapi details --id 1405113
  fiasapi details --guid 0c5b2444-70a0-4932-980c-b4dc0d3f02b5
  fiasapi details --cadnum 77:01:0001001:1024 --administrative`,
	RunE: runDetails,
}

func init() {
	rootCmd.AddCommand(detailsCmd)
	detailsCmd.Flags().Int64Var(&detailsID, "id", 0, "numeric object id")
	detailsCmd.Flags().StringVar(&detailsGUID, "guid", "", "object GUID")
	detailsCmd.Flags().StringVar(&detailsCadnum, "cadnum", "", "cadastral number")
	detailsCmd.Flags().BoolVar(&administrative, "administrative", false, "use the administrative hierarchy")
}

func runDetails(cmd *cobra.Command, args []string) error {
	selectors := 0
	if detailsID != 0 {
		selectors++
	}
	if detailsGUID != "" {
		selectors++
	}
	if detailsCadnum != "" {
		selectors++
	}
	if selectors != 1 {
		return fmt.Errorf("exactly one of --id, --guid or --cadnum is required")
	}

	token, err := resolveToken(cmd.Context())
	if err != nil {
		return err
	}
	client := newClient(token)

	addressType := fias.Municipality
	if administrative {
		addressType = fias.Administrative
	}

	result, err := callObject(cmd.Context(), func() (map[string]interface{}, error) {
		switch {
		case detailsID != 0:
			return client.DetailsByID(detailsID, addressType)
		case detailsGUID != "":
			return client.DetailsByGUID(detailsGUID, addressType)
		default:
			return client.DetailsByCadastralNumber(detailsCadnum, addressType)
		}
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}
