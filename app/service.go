package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/transitplan/config"
	coremetrics "github.com/kilianp07/transitplan/core/metrics"
	"github.com/kilianp07/transitplan/infra/cache"
	"github.com/kilianp07/transitplan/infra/logger"
	"github.com/kilianp07/transitplan/infra/metrics"
	"github.com/kilianp07/transitplan/infra/mqtt"
	"github.com/kilianp07/transitplan/infra/store"
)

// Service owns the planner and the resources configured for it.
type Service struct {
	Planner  *Planner
	log      logger.Logger
	promAddr string
	closers  []func() error
}

// New builds a Service from the configuration. Optional collaborators that
// cannot be reached (cache, broker) are logged and left out.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	log := logger.New("service")
	p := NewPlanner(cfg.Planner.Parameters, cfg.Planner.Window, logger.New("planner"))
	svc := &Service{Planner: p, log: log, promAddr: cfg.Metrics.PrometheusAddr}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	p.Sink = sink
	if c, ok := sink.(interface{ Close() }); ok {
		svc.closers = append(svc.closers, func() error { c.Close(); return nil })
	}

	st, err := store.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("run store: %w", err)
	}
	p.Store = st
	svc.closers = append(svc.closers, st.Close)

	if cfg.Cache.Enabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache)
		if err != nil {
			log.Warnf("result cache disabled: %v", err)
		} else {
			p.Cache = rc
			svc.closers = append(svc.closers, rc.Close)
		}
	}

	if cfg.MQTT.Enabled() {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			log.Warnf("schedule publishing disabled: %v", err)
		} else {
			p.Publisher = pub
			svc.closers = append(svc.closers, func() error { pub.Close(); return nil })
		}
	}
	return svc, nil
}

// Serve runs the API handler on addr, and the Prometheus listener when
// configured, until ctx is canceled.
func (s *Service) Serve(ctx context.Context, addr string, h http.Handler) error {
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("plans API listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases resources held by the service, newest first.
func (s *Service) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
