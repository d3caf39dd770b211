package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniTodo/internal/config"
	"MiniTodo/internal/todo"
	"MiniTodo/pkg/kit"
)

func main() {
	service := "todo"

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &todo.Server{
		Store: todo.NewInstrumentedStore(todo.NewStore(), reg),
		Log:   log,
	}

	h := todo.NewHandler(s, todo.HTTPDeps{
		Log:             log,
		Service:         service,
		Registry:        reg,
		MetricsEnabled:  cfg.MetricsEnabled,
		MetricsToken:    cfg.MetricsToken,
		WritesPerMinute: cfg.RateLimitPerMin,
		TrustProxy:      cfg.TrustProxy,
	})

	log.Info("config loaded",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.Addr()),
		zap.Bool("metrics", cfg.MetricsEnabled),
		zap.Int("rate_limit_per_min", cfg.RateLimitPerMin),
	)

	if err := kit.RunHTTPServer(cfg.Addr(), h, log, cfg.ShutdownTimeout); err != nil {
		kit.Fail(log, "http server stopped", err)
	}
}
