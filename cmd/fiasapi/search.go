package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fiasapi/pkg/fias"
	"fiasapi/pkg/retry"
)

var searchRaw bool

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the registry by free text",
	Long: `Search the address registry by free text and print the matches.

By default the hint payload is flattened into one line per match. With
--raw the registry's response is printed verbatim as JSON.`,
	Example: `  fiasapi search "Москва, Тверская"
  fiasapi search --raw "Санкт-Петербург"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchRaw, "raw", false, "print the raw hint payload")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	token, err := resolveToken(cmd.Context())
	if err != nil {
		return err
	}
	client := newClient(token)

	if searchRaw {
		payload, err := callObject(cmd.Context(), func() (map[string]interface{}, error) {
			return client.GetAddressHint(fias.HintRequest{SearchString: query})
		})
		if err != nil {
			return err
		}
		return printJSON(payload)
	}

	searchOp := func() ([]fias.SearchResult, error) {
		return client.Search(query)
	}
	var results []fias.SearchResult
	if cfg.Retry.Enabled {
		results, err = retry.DoWithResult(cmd.Context(), searchOp, retry.FromConfig(&cfg.Retry, log))
	} else {
		results, err = searchOp()
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%d\tlevel %d\t%s\n", r.ID, r.Level, r.Address)
	}
	return nil
}
