package optimizer

import "github.com/magefree/deckopt-go/internal/sim"

// History records every batch average observed per scenario. Entries are
// only ever appended, and scenarios keep the order they were first seen in.
type History struct {
	order   []sim.Scenario
	results map[sim.Scenario][]float64
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{results: make(map[sim.Scenario][]float64)}
}

// Append records a batch average for a scenario.
func (h *History) Append(sc sim.Scenario, value float64) {
	if _, ok := h.results[sc]; !ok {
		h.order = append(h.order, sc)
	}
	h.results[sc] = append(h.results[sc], value)
}

// Results returns a copy of the averages recorded for a scenario.
func (h *History) Results(sc sim.Scenario) []float64 {
	return append([]float64(nil), h.results[sc]...)
}

// Samples returns how many averages were recorded for a scenario.
func (h *History) Samples(sc sim.Scenario) int {
	return len(h.results[sc])
}

// Mean returns the mean of the recorded averages.
func (h *History) Mean(sc sim.Scenario) (float64, bool) {
	values := h.results[sc]
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Scenarios returns the recorded scenarios in first-seen order.
func (h *History) Scenarios() []sim.Scenario {
	return append([]sim.Scenario(nil), h.order...)
}

// Len returns the number of distinct scenarios.
func (h *History) Len() int {
	return len(h.order)
}
