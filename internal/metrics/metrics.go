// Package metrics - счетчики prometheus для сервера комнат.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "passball"

// Metrics - набор коллекторов. nil-значение безопасно: методы ничего не делают.
type Metrics struct {
	Connections    prometheus.Gauge
	RoomsCreated   prometheus.Counter
	Joins          *prometheus.CounterVec
	RoundsResolved *prometheus.CounterVec
	GamesFinished  prometheus.Counter
	DroppedEvents  *prometheus.CounterVec
}

// New создает коллекторы и регистрирует их в reg (если reg не nil)
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open websocket connections.",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Rooms created.",
		}),
		Joins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joins_total",
			Help:      "Join attempts by result.",
		}, []string{"result"}),
		RoundsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_resolved_total",
			Help:      "Resolved rounds by phase and outcome.",
		}, []string{"phase", "outcome"}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Sessions that reached GAME_OVER.",
		}),
		DroppedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_events_total",
			Help:      "Inbound events ignored by the router, by event type.",
		}, []string{"event"}),
	}
	if reg != nil {
		reg.MustRegister(m.Connections, m.RoomsCreated, m.Joins, m.RoundsResolved, m.GamesFinished, m.DroppedEvents)
	}
	return m
}

func (m *Metrics) ConnectionOpened() {
	if m != nil {
		m.Connections.Inc()
	}
}

func (m *Metrics) ConnectionClosed() {
	if m != nil {
		m.Connections.Dec()
	}
}

func (m *Metrics) RoomCreated() {
	if m != nil {
		m.RoomsCreated.Inc()
	}
}

// Joined учитывает попытку входа: ok или unavailable
func (m *Metrics) Joined(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "unavailable"
	}
	m.Joins.WithLabelValues(result).Inc()
}

func (m *Metrics) RoundResolved(phase, outcome string) {
	if m != nil {
		m.RoundsResolved.WithLabelValues(phase, outcome).Inc()
	}
}

func (m *Metrics) GameFinished() {
	if m != nil {
		m.GamesFinished.Inc()
	}
}

func (m *Metrics) EventDropped(event string) {
	if m != nil {
		m.DroppedEvents.WithLabelValues(event).Inc()
	}
}
