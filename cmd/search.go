package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <symbol_or_address>",
	Short: "Search tokens by symbol or address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.SearchToken(cmd.Context(), args[0], searchLimit)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Symbol", "Name", "Chain", "Address", "Price (USD)"})
		for _, tok := range res.Data.Tokens {
			table.Append([]string{tok.Symbol, tok.Name, tok.Chain, tok.Address, tok.PriceUSD})
		}
		table.Render()

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 10, "Maximum number of results")
}
