// Package apihandlers exposes the gateway as a local REST proxy for the
// serve command. Handlers are thin: bind, call, map errors. Shape validation
// of the parameters happens upstream.
package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HeyElsa/elsa-openclaw/internal/app"
	"github.com/HeyElsa/elsa-openclaw/internal/models"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

// RegisterRoutes wires all proxy routes under the given group.
func (h *APIHandler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.POST("/search_token", h.SearchTokenHandler)
	v1.POST("/get_token_price", h.TokenPriceHandler)
	v1.POST("/get_balances", h.BalancesHandler)
	v1.POST("/get_portfolio", h.PortfolioHandler)
	v1.POST("/analyze_wallet", h.AnalyzeWalletHandler)
	v1.POST("/get_swap_quote", h.SwapQuoteHandler)
	v1.POST("/execute_swap", h.ExecuteSwapHandler)
	v1.POST("/get_transaction_status", h.PipelineStatusHandler)
	v1.POST("/submit_transaction_hash", h.SubmitTxHashHandler)
	v1.GET("/budget", h.BudgetStatusHandler)
}

func (h *APIHandler) SearchTokenHandler(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	res, err := h.App.Elsa.SearchToken(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) TokenPriceHandler(c *gin.Context) {
	var req struct {
		TokenAddress string `json:"token_address"`
		Chain        string `json:"chain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	res, err := h.App.Elsa.TokenPrice(c.Request.Context(), req.TokenAddress, req.Chain)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) BalancesHandler(c *gin.Context) {
	wallet, ok := bindWallet(c)
	if !ok {
		return
	}
	res, err := h.App.Elsa.Balances(c.Request.Context(), wallet)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) PortfolioHandler(c *gin.Context) {
	wallet, ok := bindWallet(c)
	if !ok {
		return
	}
	res, err := h.App.Elsa.Portfolio(c.Request.Context(), wallet)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) AnalyzeWalletHandler(c *gin.Context) {
	wallet, ok := bindWallet(c)
	if !ok {
		return
	}
	res, err := h.App.Elsa.AnalyzeWallet(c.Request.Context(), wallet)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) SwapQuoteHandler(c *gin.Context) {
	var params models.SwapParams
	if err := c.ShouldBindJSON(&params); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	res, err := h.App.Elsa.SwapQuote(c.Request.Context(), params)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) ExecuteSwapHandler(c *gin.Context) {
	var req struct {
		models.SwapParams
		DryRun bool `json:"dry_run"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	res, err := h.App.Elsa.ExecuteSwap(c.Request.Context(), req.SwapParams, req.DryRun)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) PipelineStatusHandler(c *gin.Context) {
	var req struct {
		PipelineID string `json:"pipeline_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	res, err := h.App.Elsa.PipelineStatus(c.Request.Context(), req.PipelineID)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *APIHandler) SubmitTxHashHandler(c *gin.Context) {
	var req struct {
		TaskID string `json:"task_id"`
		TxHash string `json:"tx_hash"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	res, err := h.App.Elsa.SubmitTransactionHash(c.Request.Context(), req.TaskID, req.TxHash)
	if err != nil {
		CallError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// BudgetStatusHandler reports the spend window without touching the network.
func (h *APIHandler) BudgetStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.App.Budget.Status())
}

func bindWallet(c *gin.Context) (string, bool) {
	var req struct {
		WalletAddress string `json:"wallet_address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return "", false
	}
	return req.WalletAddress, true
}
