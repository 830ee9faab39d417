package app

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/HeyElsa/elsa-openclaw/internal/audit"
	"github.com/HeyElsa/elsa-openclaw/internal/budget"
	"github.com/HeyElsa/elsa-openclaw/internal/config"
	"github.com/HeyElsa/elsa-openclaw/internal/elsa"
	"github.com/HeyElsa/elsa-openclaw/internal/gateway"
	"github.com/HeyElsa/elsa-openclaw/internal/pricing"
	"github.com/HeyElsa/elsa-openclaw/internal/x402"
)

// App owns the process-wide gateway stack: one price table, one budget
// governor, one payment transport, one audit trail.
type App struct {
	Config *config.Config

	Costs  *pricing.Table
	Budget *budget.Governor
	Signer x402.Signer

	// Audit is the write side (possibly fanned out to several sinks);
	// AuditStore is the SQLite read side, nil when the store is disabled.
	Audit      audit.Logger
	AuditStore *audit.SQLiteLogger

	Gateway *gateway.Client
	Elsa    *elsa.Service

	auditFile *audit.FileLogger
}

// NewApp builds and wires all components from config. Construction is staged;
// a failure at any stage tears down what was already opened.
func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{Config: cfg}

	app.initPricing()
	app.initBudget()
	if err := app.initAudit(); err != nil {
		return nil, err
	}
	if err := app.initGateway(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.Elsa = elsa.NewService(app.Gateway)

	log.Debugf("app: gateway ready for %s (daily cap $%.2f, %d calls/min)",
		cfg.API.BaseURL, cfg.Budget.DailyCapUSD, cfg.Budget.CallsPerMinute)
	return app, nil
}

func (a *App) initPricing() {
	a.Costs = pricing.NewTable(a.Config.Pricing.Endpoints, a.Config.Pricing.DefaultCostUSD)
}

func (a *App) initBudget() {
	a.Budget = budget.NewGovernor(a.Costs, a.Config.Budget.DailyCapUSD, a.Config.Budget.CallsPerMinute)
}

func (a *App) initAudit() error {
	var sinks []audit.Logger

	if path := a.Config.Audit.FilePath; path != "" {
		fl, err := audit.NewFileLogger(path)
		if err != nil {
			return fmt.Errorf("init audit file: %w", err)
		}
		a.auditFile = fl
		sinks = append(sinks, fl)
	}

	if path := a.Config.Audit.DBPath; path != "" {
		sl, err := audit.NewSQLiteLogger(path)
		if err != nil {
			a.cleanupPartialInit()
			return fmt.Errorf("init audit store: %w", err)
		}
		a.AuditStore = sl
		sinks = append(sinks, sl)
	}

	switch len(sinks) {
	case 0:
		a.Audit = audit.Nop{}
	case 1:
		a.Audit = sinks[0]
	default:
		a.Audit = audit.Multi(sinks...)
	}
	return nil
}

func (a *App) initGateway() error {
	signer, err := x402.NewEVMSigner(a.Config.Payment.PrivateKey, a.Config.Payment.Network, a.Config.Payment.RPCURL)
	if err != nil {
		// A bad key means every paid call would fail; refuse to start.
		return fmt.Errorf("init payment signer: %w", err)
	}
	a.Signer = signer

	httpClient := &http.Client{
		Timeout: time.Duration(a.Config.API.TimeoutSeconds) * time.Second,
	}
	transport := x402.NewTransport(a.Config.API.BaseURL, signer, httpClient)

	a.Gateway = gateway.New(a.Costs, a.Budget, transport, a.Audit)
	return nil
}

func (a *App) cleanupPartialInit() {
	if a.auditFile != nil {
		a.auditFile.Close()
		a.auditFile = nil
	}
	if a.AuditStore != nil {
		a.AuditStore.Close()
		a.AuditStore = nil
	}
}

// Close releases the audit sinks.
func (a *App) Close() error {
	var firstErr error
	if a.auditFile != nil {
		if err := a.auditFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.AuditStore != nil {
		if err := a.AuditStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
