package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var priceChain string

var priceCmd = &cobra.Command{
	Use:   "price <token_address>",
	Short: "Get the current USD price of a token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.TokenPrice(cmd.Context(), args[0], priceChain)
		if err != nil {
			return err
		}

		p := res.Data
		if p.PriceUSD == "" {
			fmt.Printf("No price data available for %s on %s.\n", args[0], priceChain)
		} else {
			fmt.Printf("%s (%s): $%s\n", p.Symbol, p.TokenAddress, p.PriceUSD)
			if p.PriceChange24h != 0 {
				fmt.Printf("24h change: %+.2f%%\n", p.PriceChange24h)
			}
		}

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

func init() {
	priceCmd.Flags().StringVarP(&priceChain, "chain", "c", "base", "Chain the token lives on")
}
