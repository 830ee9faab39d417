package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

var swapDryRun bool

func addSwapFlags(flags *pflag.FlagSet) {
	flags.String("from-chain", "base", "Source chain")
	flags.String("from-token", "", "Source token address or symbol")
	flags.String("amount", "", "Amount to swap, in source token units")
	flags.String("to-chain", "base", "Destination chain")
	flags.String("to-token", "", "Destination token address or symbol")
	flags.String("wallet", "", "Wallet address the swap runs from")
	flags.Float64("slippage", 1.0, "Allowed slippage in percent")
}

func swapParamsFromFlags(flags *pflag.FlagSet) (models.SwapParams, error) {
	params := models.SwapParams{}
	params.FromChain, _ = flags.GetString("from-chain")
	params.FromToken, _ = flags.GetString("from-token")
	params.FromAmount, _ = flags.GetString("amount")
	params.ToChain, _ = flags.GetString("to-chain")
	params.ToToken, _ = flags.GetString("to-token")
	params.WalletAddress, _ = flags.GetString("wallet")
	params.Slippage, _ = flags.GetFloat64("slippage")

	if params.FromToken == "" || params.ToToken == "" || params.FromAmount == "" || params.WalletAddress == "" {
		return params, fmt.Errorf("--from-token, --to-token, --amount and --wallet are required")
	}
	return params, nil
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a swap without executing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		params, err := swapParamsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.SwapQuote(cmd.Context(), params)
		if err != nil {
			return err
		}

		q := res.Data
		fmt.Printf("Quote %s\n", q.QuoteID)
		fmt.Printf("  %s %s (%s) -> %s %s (%s)\n",
			q.FromAmount, q.FromToken, q.FromChain, q.ToAmount, q.ToToken, q.ToChain)
		fmt.Printf("  value: $%s -> $%s (min received %s)\n", q.FromAmountUSD, q.ToAmountUSD, q.ToAmountMin)
		fmt.Printf("  price impact: %s  gas: $%s\n", q.PriceImpact, q.GasEstimateUSD)

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Execute a swap through the Elsa pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		params, err := swapParamsFromFlags(cmd.Flags())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.ExecuteSwap(cmd.Context(), params, swapDryRun)
		if err != nil {
			return err
		}

		fmt.Printf("Pipeline %s started (status: %s)\n", res.Data.PipelineID, res.Data.Status)
		for _, task := range res.Data.Tasks {
			fmt.Printf("  task %s [%s] %s\n", task.TaskID, task.Status, task.Description)
		}
		if res.Data.Message != "" {
			fmt.Println(res.Data.Message)
		}

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

func init() {
	addSwapFlags(quoteCmd.Flags())
	addSwapFlags(swapCmd.Flags())
	swapCmd.Flags().BoolVar(&swapDryRun, "dry-run", true, "Simulate the swap instead of executing it")
}
