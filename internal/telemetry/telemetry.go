// Package telemetry exposes engine state as Prometheus metrics.
package telemetry

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/submoonsim/internal/dynamo"
	"github.com/san-kum/submoonsim/internal/physics"
)

const namespace = "submoonsim"

// Collector holds the engine metrics on a private registry, so several
// collectors can coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	ticks           prometheus.Counter
	score           prometheus.Gauge
	submoonDistance prometheus.Gauge
	angle           *prometheus.GaugeVec
	turns           *prometheus.GaugeVec
	frozen          *prometheus.GaugeVec
	configureErrors *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Frames advanced by the engine",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stability_score",
			Help:      "Stability score of the active configuration",
		}),
		submoonDistance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "submoon_distance",
			Help:      "Distance between submoon and moon in scene units",
		}),
		angle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orbit_angle_radians",
				Help:      "Phase angle of each orbit, reduced to [0, 2π)",
			},
			[]string{"level"},
		),
		turns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orbit_turns",
				Help:      "Completed turns of each orbit",
			},
			[]string{"level"},
		),
		frozen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "orbit_frozen",
				Help:      "1 when an orbit is frozen because its period is degenerate",
			},
			[]string{"level"},
		),
		configureErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "configure_errors_total",
				Help:      "Rejected configurations by offending field",
			},
			[]string{"field"},
		),
	}

	c.registry.MustRegister(
		c.ticks,
		c.score,
		c.submoonDistance,
		c.angle,
		c.turns,
		c.frozen,
		c.configureErrors,
	)
	return c
}

// OnTick counts one frame and records the snapshot.
func (c *Collector) OnTick(tick int, snap dynamo.Snapshot) {
	c.ticks.Inc()
	c.ObserveSnapshot(snap)
}

func (c *Collector) ObserveSnapshot(snap dynamo.Snapshot) {
	c.score.Set(float64(snap.Stats.Score))
	c.submoonDistance.Set(snap.Positions.SubmoonOffset().Norm())
	for i := 0; i < physics.NumLevels; i++ {
		level := physics.Level(i).String()
		c.angle.WithLabelValues(level).Set(snap.State.Angles[i])
		c.turns.WithLabelValues(level).Set(float64(snap.State.Turns[i]))
		frozen := 0.0
		if snap.Speeds.Frozen[i] {
			frozen = 1
		}
		c.frozen.WithLabelValues(level).Set(frozen)
	}
}

// RecordConfigureError counts a rejected configuration. The field label is
// taken from a *dynamo.ParameterError when present.
func (c *Collector) RecordConfigureError(err error) {
	if err == nil {
		return
	}
	field := "unknown"
	var perr *dynamo.ParameterError
	if errors.As(err, &perr) {
		field = perr.Field
	}
	c.configureErrors.WithLabelValues(field).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
