package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhanafy/agentgate/internal/agent"
	"github.com/mhanafy/agentgate/internal/api"
	"github.com/mhanafy/agentgate/internal/config"
	"github.com/mhanafy/agentgate/internal/log"
	"github.com/mhanafy/agentgate/internal/market"
	"github.com/mhanafy/agentgate/internal/portfolio"
	"github.com/mhanafy/agentgate/internal/server"
	"github.com/mhanafy/agentgate/internal/trading"
	"github.com/mhanafy/agentgate/internal/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the agent gateway server",
	Long:  `Starts the HTTP server hosting the conversational webhook and the REST API backing the agent's tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		log.Configure(log.Config{
			Level:   level,
			Console: cfg.Logging.Console,
			Service: "agentgate",
		})

		// Open the pending-trade store.
		store, err := trading.Open(filepath.Join(cfg.DataDir, "agentgate.db"))
		if err != nil {
			return fmt.Errorf("opening trade store: %w", err)
		}
		defer store.Close()

		ag := agent.New(agent.Config{
			Name:      cfg.Agent.Name,
			ProjectID: cfg.Agent.ProjectID,
			Location:  cfg.Agent.Location,
			AgentID:   cfg.Agent.AgentID,
		})

		ttl := time.Duration(cfg.Trading.PendingTTLDays) * 24 * time.Hour
		executor := trading.NewExecutor(store, ttl, log.WithComponent("trading"))

		registry := agent.NewRegistry(log.WithComponent("agent"))
		webhook.RegisterIntents(registry, webhook.Intents{
			Agent:    ag,
			Executor: executor,
			Mode:     cfg.Trading.ExecutionMode,
		})

		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAll,
			RateLimit:      cfg.Server.RateLimit,
			TimeoutSeconds: cfg.Server.TimeoutSeconds,
		}, log.WithComponent("http"))

		registerRoutes(srv, registry, executor, cfg)

		// Expired pending trades are purged in the background so the
		// store does not grow without bound.
		purgeCtx, cancelPurge := context.WithCancel(context.Background())
		defer cancelPurge()
		go purgeLoop(purgeCtx, store)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger := log.Base()
		logger.Info().
			Str("version", Version).
			Int("port", cfg.Server.Port).
			Str("mode", string(cfg.Trading.ExecutionMode)).
			Msg("agentgate starting")

		if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerRoutes wires the webhook and the REST API onto the server.
func registerRoutes(srv *server.Server, registry *agent.Registry, executor *trading.Executor, cfg *config.Config) {
	r := srv.Router()

	// Conversational webhook.
	wh := webhook.NewHandler(registry, log.WithComponent("webhook"))
	webhook.RegisterRoutes(r, wh)

	// REST API backing the agent's tools. Unmatched paths fall through
	// to the API directory listing.
	svc := api.New(cfg.Agent.Name, log.WithComponent("api"))
	svc.Register("volatility_opportunities", market.VolatilityOpportunities)
	svc.Register("sector_analysis", market.SectorAnalysis)
	svc.Register("analyze_symbol", market.AnalyzeSymbolHandler)
	svc.Register("portfolio_analyzer", portfolio.AnalyzeHandler)
	svc.Register("generate_investment_strategy", portfolio.StrategyHandler)
	svc.Register("educational_content", portfolio.EducationHandler)
	svc.Register("execute_portfolio_action", executor.ActionHandler)
	r.Handle("/*", svc)
}

func purgeLoop(ctx context.Context, store *trading.Store) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := store.PurgeExpired(ctx); err == nil && n > 0 {
				logger := log.WithComponent("trading")
				logger.Info().Int64("purged", n).Msg("purged expired pending trades")
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
