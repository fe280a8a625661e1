package run

import (
	"fmt"
	"strings"

	"github.com/xtding233/rpsbuild/internal/pricing"
	"github.com/xtding233/rpsbuild/internal/rps"
)

// Policy decides what an unattended player does between rounds.
type Policy interface {
	Name() string
	Between(s *State)
}

// Passive never spends points or reserves.
type Passive struct{}

func (Passive) Name() string { return "passive" }
func (Passive) Between(*State) {}

// Reserve buys gauge until its preferred colors are charged (when BuyGauge is
// set) and then reserves every charge it can, main color first.
type Reserve struct {
	BuyGauge bool
}

func (r Reserve) Name() string {
	if r.BuyGauge {
		return "reserve"
	}
	return "reserve-only"
}

func (r Reserve) Between(s *State) {
	priority := preferredColors(s)
	if r.BuyGauge {
		g := s.Gauge()
		d := pricing.ChargePlan(s.tuning.Catalog(), s.Points(), g.Values(), g.Max(), priority)
		if !d.Empty() {
			s.CommitDraft(d, s.Reserved())
		}
	}
	for _, c := range priority {
		for s.ReserveForced(c) {
		}
	}
}

// preferredColors puts the player's main and second colors first, then the
// rest in declaration order.
func preferredColors(s *State) []rps.Color {
	info := s.PlayerInfo()
	out := []rps.Color{info.Main}
	if info.Second != info.Main {
		out = append(out, info.Second)
	}
	for _, c := range rps.Colors {
		if c != info.Main && c != info.Second {
			out = append(out, c)
		}
	}
	return out
}

// ParsePolicy maps a CLI name to a policy: "passive", "reserve" (spend points
// on gauge) or "reserve-only" (reserve earned charges only).
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "passive", "":
		return Passive{}, nil
	case "reserve":
		return Reserve{BuyGauge: true}, nil
	case "reserve-only":
		return Reserve{}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}
