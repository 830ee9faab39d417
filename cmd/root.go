package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HeyElsa/elsa-openclaw/internal/app"
	"github.com/HeyElsa/elsa-openclaw/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "openclaw",
	Short: "Payment-metered client for the Elsa x402 API",
	Long: `openclaw calls the Elsa API, answering HTTP 402 payment challenges with
signed authorizations while enforcing a local daily-spend and rate budget.
Every attempt, successful or not, lands on the audit trail.`,
	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print help.
		cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if appInstance, err := GetAppFromContext(cmd.Context()); err == nil {
			return appInstance.Close()
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// contextKey avoids collisions with other context values.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(balancesCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)
}
