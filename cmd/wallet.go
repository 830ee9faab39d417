package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "balances <wallet_address>",
	Short: "List token balances of a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.Balances(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Chain", "Symbol", "Balance", "Value (USD)"})
		for _, b := range res.Data.Balances {
			table.Append([]string{b.Chain, b.Symbol, b.Balance, b.BalanceUSD})
		}
		table.Render()
		fmt.Printf("Total: $%s\n", res.Data.TotalUSD)

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

var portfolioCmd = &cobra.Command{
	Use:   "portfolio <wallet_address>",
	Short: "Show a cross-chain portfolio breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.Portfolio(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Portfolio of %s: $%s\n\n", res.Data.WalletAddress, res.Data.TotalValueUSD)
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Chain", "Symbol", "Balance", "Value (USD)"})
		for _, chain := range res.Data.Chains {
			for _, tok := range chain.Tokens {
				table.Append([]string{chain.Chain, tok.Symbol, tok.Balance, tok.ValueUSD})
			}
		}
		table.Render()

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <wallet_address>",
	Short: "Analyze a wallet's risk and activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.AnalyzeWallet(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		a := res.Data
		fmt.Printf("Wallet:       %s\n", a.WalletAddress)
		fmt.Printf("Risk score:   %.1f\n", a.RiskScore)
		fmt.Printf("Transactions: %d\n", a.ActivitySummary.TotalTransactions)
		fmt.Printf("First seen:   %s\n", a.ActivitySummary.FirstSeen)
		fmt.Printf("Last active:  %s\n", a.ActivitySummary.LastActive)
		if len(a.Labels) > 0 {
			fmt.Printf("Labels:       %v\n", a.Labels)
		}

		printBilling(res.Billing, res.Meta)
		return nil
	},
}
