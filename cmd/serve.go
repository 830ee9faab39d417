package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HeyElsa/elsa-openclaw/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gateway as a local HTTP proxy",
	Long: `Starts an HTTP server exposing the Elsa endpoints locally. Callers hit the
proxy with plain JSON; payment, budgeting and auditing happen behind it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default()

		apiHandler := apihandlers.NewAPIHandler(appInstance)
		v1 := router.Group("/api/v1")
		apiHandler.RegisterRoutes(v1)

		router.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		listenAddr := fmt.Sprintf("%s:%s", serveAddr, servePort)
		log.Infof("Starting openclaw proxy on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1", "Listen address")
	serveCmd.Flags().StringVar(&servePort, "port", "8787", "Listen port")
}
