package cmd

import (
	"github.com/fatih/color"

	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

// printBilling prints the billing/meta footer shared by all call commands.
func printBilling(billing models.BillingInfo, meta models.MetaInfo) {
	faint := color.New(color.Faint)
	receipt := "n/a"
	if billing.Receipt != nil {
		receipt = *billing.Receipt
	}
	fallback := ""
	if meta.FallbackUsed {
		fallback = " (fallback used)"
	}
	faint.Printf("\ncost: $%.4f  latency: %dms  receipt: %s%s\n",
		billing.EstimatedCostUSD, meta.LatencyMs, receipt, fallback)
}
