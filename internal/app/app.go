package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/data/sheets"
	apphttp "github.com/AdminHomeSmile/scg-customer-screening/internal/http"
	httpH "github.com/AdminHomeSmile/scg-customer-screening/internal/http/handlers"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/observability"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/sendgrid"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/services"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Table  sheets.Table
	Leads  services.LeadService
	Server *apphttp.Server

	closers []func() error
}

// New loads configuration from the environment and wires the lead router.
func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := NewWithConfig(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Log: log, Cfg: cfg}

	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: observability.DefaultServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     cfg.Otel.Headers,
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	})
	a.closers = append(a.closers, func() error { return shutdownOtel(context.Background()) })

	table, closeStore, err := wireStore(ctx, log, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	a.Table = table
	a.closers = append(a.closers, closeStore)

	rules, err := services.LoadRoutingRules(cfg.RoutingConfig)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Leads = services.NewLeadService(
		log,
		table,
		rules,
		services.NewComposer(services.ComposerConfig{
			SubjectPrefix:  cfg.SubjectPrefix,
			OtherSentinels: cfg.OtherSentinels,
		}),
		wireNotifier(log),
		services.LeadServiceConfig{ExtendHeader: cfg.ExtendHeader},
	)

	if cfg.LogMode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Server = apphttp.NewServer(cfg.Addr(), apphttp.RouterConfig{
		Log:           log,
		ServiceName:   observability.DefaultServiceName,
		AllowOrigins:  cfg.AllowOrigins,
		LeadHandler:   httpH.NewLeadHandler(log, a.Leads, cfg.MaxLeadBytes),
		HealthHandler: httpH.NewHealthHandler(),
	})
	return a, nil
}

// wireNotifier uses SendGrid when an API key is configured and logs
// otherwise.
func wireNotifier(log *logger.Logger) services.Notifier {
	sgCfg := sendgrid.ConfigFromEnv()
	if strings.TrimSpace(sgCfg.APIKey) == "" {
		log.Warn("SENDGRID_API_KEY not set; lead emails are logged only")
		return services.NewLogNotifier(log)
	}
	client, err := sendgrid.New(log, sgCfg)
	if err != nil {
		log.Warn("SendGrid client init failed; lead emails are logged only", "error", err)
		return services.NewLogNotifier(log)
	}
	return services.NewSendGridNotifier(log, client)
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Lead router listening", "addr", a.Cfg.Addr(), "store", a.Cfg.StoreBackend)
	return a.Server.Run()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.Log != nil {
			a.Log.Warn("Close failed", "error", err)
		}
	}
	a.closers = nil
	if a.Log != nil {
		a.Log.Sync()
	}
}
