package run

import "github.com/xtding233/rpsbuild/internal/rps"

// HandStat counts the cards an enemy archetype actually drew over the run.
type HandStat struct {
	Rounds int
	Cards  [rps.NumColors]int
}

func (h *HandStat) add(hands []rps.Color) {
	h.Rounds++
	for _, c := range hands {
		if c.Valid() {
			h.Cards[c]++
		}
	}
}

func (h HandStat) Total() int {
	return h.Cards[rps.Gu] + h.Cards[rps.Choki] + h.Cards[rps.Pa]
}

// Share is the fraction of drawn cards that were c; 0 before any round.
func (h HandStat) Share(c rps.Color) float64 {
	total := h.Total()
	if total == 0 || !c.Valid() {
		return 0
	}
	return float64(h.Cards[c]) / float64(total)
}
