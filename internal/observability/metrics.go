package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
)

const metricsNamespace = "fight_fantasy"

// Metrics owns a private registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	scoringRuns        *prometheus.CounterVec
	scoringDuration    *prometheus.HistogramVec
	fightScoresCreated prometheus.Counter
	teamsUpdated       prometheus.Counter
	lastRunTeams       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scoringRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "runs_total",
			Help:      "Scoring runs by outcome.",
		}, []string{"outcome"}),
		scoringDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a scoring run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"outcome"}),
		fightScoresCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "fight_scores_created_total",
			Help:      "Fight scores committed.",
		}),
		teamsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "team_increments_total",
			Help:      "Team score increments committed.",
		}),
		lastRunTeams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "scoring",
			Name:      "last_run_teams",
			Help:      "Teams touched by the last applied scoring run.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.scoringRuns,
		m.scoringDuration,
		m.fightScoresCreated,
		m.teamsUpdated,
		m.lastRunTeams,
	)
	return m
}

// ObserveScoringRun records one scoring run. Counts are only added for runs
// that committed.
func (m *Metrics) ObserveScoringRun(outcome string, duration time.Duration, fightScores, teams int) {
	m.scoringRuns.WithLabelValues(outcome).Inc()
	m.scoringDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if outcome != usecase.ScoringOutcomeApplied {
		return
	}
	m.fightScoresCreated.Add(float64(fightScores))
	m.teamsUpdated.Add(float64(teams))
	m.lastRunTeams.Set(float64(teams))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
