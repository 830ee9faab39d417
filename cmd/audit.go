package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/HeyElsa/elsa-openclaw/internal/clix"
)

var (
	auditListLimit  int
	auditListOffset int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the call audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded call attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.AuditStore == nil {
			return fmt.Errorf("audit store is disabled (audit.db_path is empty)")
		}

		pagination, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return fmt.Errorf("invalid pagination flags: %w", err)
		}

		entries, err := appInstance.AuditStore.List(cmd.Context(), pagination.Limit, pagination.Offset)
		if err != nil {
			return fmt.Errorf("failed to list audit entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No audit entries found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Time", "Type", "Endpoint", "OK", "Cost (USD)", "Latency", "Detail"})
		for _, e := range entries {
			ok := "yes"
			if !e.OK {
				ok = "no"
			}
			detail := e.Error
			if detail == "" {
				detail = e.Note
			}
			table.Append([]string{
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Type,
				e.Endpoint,
				ok,
				fmt.Sprintf("%.4f", e.EstimatedCostUSD),
				fmt.Sprintf("%dms", e.LatencyMs),
				detail,
			})
		}
		table.Render()

		fmt.Printf("\nDisplayed %d entries.\n", len(entries))
		return nil
	},
}

var auditSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals across the whole audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if appInstance.AuditStore == nil {
			return fmt.Errorf("audit store is disabled (audit.db_path is empty)")
		}

		totalCost, calls, failures, err := appInstance.AuditStore.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to summarize audit trail: %w", err)
		}

		fmt.Println("Audit summary:")
		fmt.Println("--------------")
		fmt.Printf("Total calls:     %d\n", calls)
		fmt.Printf("Failed calls:    %d\n", failures)
		fmt.Printf("Estimated spend: $%.4f\n", totalCost)
		return nil
	},
}

func init() {
	auditCmd.AddCommand(auditListCmd)
	auditCmd.AddCommand(auditSummaryCmd)

	auditListCmd.Flags().IntVarP(&auditListLimit, "limit", "l", 50, "Number of entries to display")
	auditListCmd.Flags().IntVarP(&auditListOffset, "offset", "o", 0, "Number of entries to skip")
}
