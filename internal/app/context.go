// Package app holds the runtime shared by the weatherdash commands: settings,
// logger, metrics and the favorites API client.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/tphakala/weatherdash/internal/apiclient"
	"github.com/tphakala/weatherdash/internal/buildinfo"
	"github.com/tphakala/weatherdash/internal/conf"
	"github.com/tphakala/weatherdash/internal/dashboard"
	"github.com/tphakala/weatherdash/internal/errors"
	"github.com/tphakala/weatherdash/internal/httpclient"
	"github.com/tphakala/weatherdash/internal/logger"
	"github.com/tphakala/weatherdash/internal/metrics"
	"github.com/tphakala/weatherdash/internal/render"
	"github.com/tphakala/weatherdash/internal/telemetry"
)

const (
	componentName    = "cli"
	telemetryTimeout = 2 * time.Second
)

// Context carries everything a command needs once Setup has run.
type Context struct {
	Settings  *conf.Settings
	Logger    logger.Logger
	Metrics   *metrics.Metrics
	API       *apiclient.Client
	BuildInfo *buildinfo.Context

	// LogOutput receives console log lines, stderr when nil.
	LogOutput io.Writer

	central   *logger.CentralLogger
	http      *httpclient.Client
	telemetry bool
}

// NewContext creates an empty Context for the given build.
func NewContext(info *buildinfo.Context) *Context {
	if info == nil {
		info = buildinfo.Current()
	}
	return &Context{
		BuildInfo: info,
		Logger:    logger.NewDiscardLogger(),
	}
}

// LoadSettings reads settings without building any clients. Commands that
// never talk to the API, such as config, use it directly.
func (c *Context) LoadSettings(configFile string, flags *pflag.FlagSet) error {
	settings, err := conf.Load(configFile, flags)
	if err != nil {
		return err
	}
	c.Settings = settings
	return nil
}

// Setup loads settings, starts logging and telemetry and builds the API
// client. The returned context carries a fresh trace id.
func (c *Context) Setup(ctx context.Context, configFile string, flags *pflag.FlagSet) (context.Context, error) {
	if err := c.LoadSettings(configFile, flags); err != nil {
		return ctx, err
	}

	logOut := c.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}
	cfg := c.Settings.LoggerConfig()
	central, err := logger.NewCentralLogger(&cfg, logger.WithConsoleWriter(logOut))
	if err != nil {
		return ctx, errors.New(err).
			Component(componentName).
			Category(errors.CategoryConfiguration).
			Context("operation", "init-logger").
			Build()
	}
	c.central = central
	c.Logger = rootLogger{Logger: central.Module(componentName), central: central}

	ctx = logger.WithTraceID(ctx, uuid.NewString())

	enabled, err := telemetry.Init(&c.Settings.Sentry, c.BuildInfo.GetVersion(), c.Logger)
	if err != nil {
		// telemetry is optional, a bad DSN must not stop the dashboard
		c.Logger.Warn("telemetry disabled", logger.Error(err))
	}
	c.telemetry = enabled

	m, err := metrics.NewMetrics()
	if err != nil {
		return ctx, err
	}
	c.Metrics = m

	c.http = httpclient.New(&httpclient.Config{
		DefaultTimeout:    c.Settings.API.Timeout,
		UserAgent:         c.Settings.API.UserAgent + "/" + c.BuildInfo.GetVersion(),
		RequestsPerSecond: c.Settings.API.RateLimit,
		Burst:             c.Settings.API.Burst,
	})
	m.API.Instrument(c.http)

	api, err := apiclient.New(c.Settings.API.BaseURL, c.http, c.Logger)
	if err != nil {
		return ctx, err
	}
	c.API = api

	c.Logger.WithContext(ctx).Debug("initialized",
		logger.String("version", c.BuildInfo.GetVersion()),
		logger.String("api", errors.ScrubMessage(c.Settings.API.BaseURL)),
		logger.String("config", c.Settings.ConfigFile))
	return ctx, nil
}

// Dashboard creates a controller over the API client that reports every
// state change to the dashboard metrics.
func (c *Context) Dashboard(confirm dashboard.Confirmer) *dashboard.Controller {
	opts := []dashboard.Option{dashboard.WithLogger(c.Logger)}
	if c.Metrics != nil {
		opts = append(opts, dashboard.WithObserver(c.Metrics.Dashboard.Observe))
	}
	return dashboard.New(c.API, confirm, opts...)
}

// Renderer returns a renderer for w honouring the dashboard settings.
// In auto mode colour is used only when w is an interactive terminal.
func (c *Context) Renderer(w io.Writer) (io.Writer, *render.Renderer) {
	color := false
	if f, ok := w.(*os.File); ok {
		w, color = render.Output(f)
	}

	opts := render.Options{Color: color}
	if c.Settings != nil {
		switch c.Settings.Dashboard.Color {
		case "always":
			opts.Color = true
		case "never":
			opts.Color = false
		}
		opts.ASCII = c.Settings.Dashboard.ASCII
		opts.Width = c.Settings.Dashboard.Width
	}
	return w, render.New(opts)
}

// rootLogger logs as the cli module, but Module returns top-level module
// loggers so per-module levels from the config apply to them.
type rootLogger struct {
	logger.Logger
	central *logger.CentralLogger
}

func (r rootLogger) Module(name string) logger.Logger {
	return r.central.Module(name)
}

// Close writes the metrics textfile, flushes telemetry and releases the
// HTTP client and log files. It is safe to call when Setup did not run.
func (c *Context) Close() error {
	var errs []error

	if c.Metrics != nil && c.Settings != nil && c.Settings.Metrics.Textfile != "" {
		if err := c.Metrics.WriteTextfile(c.Settings.Metrics.Textfile); err != nil {
			errs = append(errs, err)
		}
	}
	if c.telemetry {
		telemetry.Shutdown(telemetryTimeout)
		c.telemetry = false
	}
	if c.http != nil {
		c.http.Close()
		c.http = nil
	}
	if c.central != nil {
		if err := c.central.Close(); err != nil {
			errs = append(errs, err)
		}
		c.central = nil
	}
	return errors.Join(errs...)
}
