package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the current spend and rate budget window",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		status := appInstance.Budget.Status()
		dailyCap := appInstance.Budget.DailyCapUSD()

		// Color the remaining budget by how much headroom is left.
		remaining := color.GreenString("$%.4f", status.RemainingTodayUSD)
		switch {
		case status.RemainingTodayUSD <= 0:
			remaining = color.RedString("$%.4f", status.RemainingTodayUSD)
		case status.RemainingTodayUSD < dailyCap*0.2:
			remaining = color.YellowString("$%.4f", status.RemainingTodayUSD)
		}

		fmt.Println("Budget window (UTC day):")
		fmt.Printf("  spent today:      $%.4f of $%.2f\n", status.SpentTodayUSD, dailyCap)
		fmt.Printf("  remaining today:  %s\n", remaining)
		fmt.Printf("  calls last 60s:   %d of %d\n", status.CallsLastMinute, appInstance.Budget.RateCap())

		if len(status.LastCalls) > 0 {
			fmt.Println("\nRecent calls:")
			for _, rec := range status.LastCalls {
				fmt.Printf("  %s  %-30s $%.4f\n",
					rec.Timestamp.Format("15:04:05"), rec.Endpoint, rec.CostUSD)
			}
		}
		return nil
	},
}
