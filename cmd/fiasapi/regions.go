package main

import (
	"github.com/spf13/cobra"
)

// regionsCmd represents the regions command
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the registry's top-level regions",
	Long:  `List all top-level regions and print the response as JSON.`,
	RunE:  runRegions,
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}

func runRegions(cmd *cobra.Command, args []string) error {
	token, err := resolveToken(cmd.Context())
	if err != nil {
		return err
	}

	client := newClient(token)
	result, err := callObject(cmd.Context(), client.GetRegions)
	if err != nil {
		return err
	}
	return printJSON(result)
}
