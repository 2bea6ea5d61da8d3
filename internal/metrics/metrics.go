package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "rabbits_den"

	labelKind = "kind"

	KindPaid = "paid"
	KindFree = "free"
)

// Metrics коллекторы игрового сервиса. Имена: rabbits_den_cascade_<name>
type Metrics struct {
	spins          *prometheus.CounterVec
	bet            prometheus.Counter
	win            *prometheus.CounterVec
	cascades       prometheus.Histogram
	bonusTriggers  prometheus.Counter
	bonusPurchases prometheus.Counter
	cascadeLimit   prometheus.Counter
}

// New регистрирует коллекторы в reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		spins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cascade_spins_total", Help: "Сыгранные спины",
		}, []string{labelKind}),
		bet: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cascade_bet_total", Help: "Сумма списанных ставок",
		}),
		win: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cascade_win_total", Help: "Сумма выигрышей",
		}, []string{labelKind}),
		cascades: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "cascade_steps", Help: "Число каскадов за спин",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		bonusTriggers: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cascade_bonus_triggers_total", Help: "Запуски бонуса скаттерами",
		}),
		bonusPurchases: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cascade_bonus_purchases_total", Help: "Покупки бонуса",
		}),
		cascadeLimit: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "cascade_limit_exceeded_total", Help: "Спины, упершиеся в предел каскадов",
		}),
	}
}

// ObserveSpin учитывает один спин; bet нулевой для фриспина
func (m *Metrics) ObserveSpin(free bool, bet, win int64, cascades int, bonus bool) {
	if m == nil {
		return
	}
	kind := KindPaid
	if free {
		kind = KindFree
	}
	m.spins.WithLabelValues(kind).Inc()
	m.bet.Add(float64(bet))
	m.win.WithLabelValues(kind).Add(float64(win))
	m.cascades.Observe(float64(cascades))
	if bonus {
		m.bonusTriggers.Inc()
	}
}

func (m *Metrics) ObserveBonusPurchase() {
	if m == nil {
		return
	}
	m.bonusPurchases.Inc()
}

func (m *Metrics) ObserveCascadeLimit() {
	if m == nil {
		return
	}
	m.cascadeLimit.Inc()
}
