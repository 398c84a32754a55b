package metrics

import (
	"strconv"

	"github.com/KirkDiggler/dicetray/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Roll kinds
const (
	RollKindFull   = "full"
	RollKindReroll = "reroll"
	RollKindEdit   = "edit"
)

// Metrics counts dice table activity. A nil *Metrics records nothing.
type Metrics struct {
	rolls          *prometheus.CounterVec
	diceRolled     *prometheus.CounterVec
	historyCleared prometheus.Counter
	sessionsEnded  prometheus.Counter
}

// New registers the dice table counters on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		rolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dicetray_rolls_total",
				Help: "Total number of roll actions by kind.",
			},
			[]string{"kind"},
		),
		diceRolled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dicetray_dice_rolled_total",
				Help: "Total number of individual dice rolled by face count.",
			},
			[]string{"sides"},
		),
		historyCleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "dicetray_history_cleared_total",
			Help: "Total number of roll history clears.",
		}),
		sessionsEnded: factory.NewCounter(prometheus.CounterOpts{
			Name: "dicetray_sessions_ended_total",
			Help: "Total number of sessions ended by their player.",
		}),
	}
}

// ObserveRoll counts one roll action of kind that produced dice
func (m *Metrics) ObserveRoll(kind string, dice ...models.Die) {
	if m == nil {
		return
	}
	m.rolls.WithLabelValues(kind).Inc()
	for _, d := range dice {
		m.diceRolled.WithLabelValues(strconv.Itoa(d.Sides.Sides())).Inc()
	}
}

// HistoryCleared counts a history clear
func (m *Metrics) HistoryCleared() {
	if m == nil {
		return
	}
	m.historyCleared.Inc()
}

// SessionEnded counts a session ended on request
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsEnded.Inc()
}
