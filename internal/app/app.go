// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lead-assistant/internal/api"
	"lead-assistant/internal/common/aws"
	"lead-assistant/internal/common/config"
	"lead-assistant/internal/common/database"
	apphttp "lead-assistant/internal/common/http"
	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/common/observability"
	"lead-assistant/internal/common/zoho"
	"lead-assistant/internal/lead/fusion"
	"lead-assistant/internal/lead/store"
	"lead-assistant/internal/services/conversation"
	"lead-assistant/internal/services/handoff"
	"lead-assistant/internal/services/llm"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const ServiceName = "lead-assistant"

// Options carries process-level collaborators that tests replace.
type Options struct {
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// App is a fully wired lead assistant.
type App struct {
	Router *gin.Engine

	cfg     *config.Config
	obs     *observability.Observability
	closers []func() error
	logger  logger.Logger
}

// New builds every dependency the configuration enables. Clients are
// created lazily where the driver allows it; /ready reports reachability.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	a := &App{
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "app"}),
	}

	var checks []api.Pinger
	outbound := apphttp.NewClient(config.GetDuration(cfg.LLM.Timeout), ServiceName+"/"+cfg.App.Version)

	var redisClient *redis.Client
	if cfg.Store.Backend == config.StoreBackendRedis {
		rc := database.NewRedis(cfg.Database.Redis)
		redisClient = rc.Client
		checks = append(checks, rc)
		a.closers = append(a.closers, rc.Close)
	}

	leads, err := store.New(cfg.Store, redisClient, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	llmClient, err := llm.NewClient(llm.LoadConfig(cfg.LLM), outbound, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	conv := conversation.NewHandler(conversation.LoadConfig(cfg), llmClient, leads, fusion.NewEngine(log), log)

	hand, err := a.buildHandoff(ctx, leads, outbound, &checks, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.obs = observability.New(ServiceName, opts.Registerer, log)

	a.Router = api.NewRouter(api.Dependencies{
		ServiceName:    ServiceName,
		Conversation:   conv,
		Handoff:        hand,
		Observability:  a.obs,
		MetricsHandler: promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}),
		Checks:         checks,
		Logger:         log,
	})

	a.logger.Info("lead assistant wired", map[string]interface{}{
		"storeBackend": cfg.Store.Backend,
		"model":        cfg.LLM.Model,
		"persist":      cfg.Handoff.Persist,
		"crm":          cfg.Integrations.Zoho.Enabled,
		"email":        cfg.Integrations.AWS.SES.Enabled,
		"sms":          cfg.Integrations.AWS.SNS.Enabled,
	})
	return a, nil
}

func (a *App) buildHandoff(ctx context.Context, leads store.Store, outbound *apphttp.Client, checks *[]api.Pinger, log logger.Logger) (*handoff.Handler, error) {
	cfg := a.cfg

	var recorder handoff.Recorder
	if cfg.Handoff.Persist {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pg.Close)
		*checks = append(*checks, pg)

		pgRecorder := handoff.NewPostgresRecorder(pg.DB)
		if err := pgRecorder.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		recorder = pgRecorder
	}

	var crm handoff.CRMService
	if cfg.Integrations.Zoho.Enabled {
		crm = zoho.NewCRMClient(cfg.Integrations.Zoho.BaseURL, cfg.Integrations.Zoho.AuthToken, outbound)
	}

	var sesClient handoff.SESService
	if cfg.Integrations.AWS.SES.Enabled {
		client, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("ses client: %w", err)
		}
		sesClient = client
	}

	var snsClient handoff.SNSService
	if cfg.Integrations.AWS.SNS.Enabled {
		client, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, fmt.Errorf("sns client: %w", err)
		}
		snsClient = client
	}

	return handoff.NewHandler(handoff.LoadConfig(cfg), leads, recorder, crm, sesClient, snsClient, log), nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      a.Router,
		ReadTimeout:  config.GetDuration(a.cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(a.cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := config.GetDuration(a.cfg.Server.ShutdownTimeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.logger.Info("shutting down http server", nil)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}

// Close releases database connections and flushes metrics.
func (a *App) Close() error {
	var errs []error
	if a.obs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.obs.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
